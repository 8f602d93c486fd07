package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-editor/internal/bootstrap"
	"resume-editor/internal/shared/config"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected memory repos without DATABASE_URL")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var health struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if !health.OK {
		t.Fatalf("expected ok true")
	}
}

func TestAddr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7000", ":7000"},
	}
	for _, c := range cases {
		if got := bootstrap.Addr(c.in); got != c.want {
			t.Fatalf("Addr(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
