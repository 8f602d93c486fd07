// Package bootstrap wires shared dependencies and builds the router.
package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-editor/internal/documents"
	"resume-editor/internal/ledger"
	"resume-editor/internal/sessions"
	"resume-editor/internal/shared/config"
	"resume-editor/internal/shared/server/middleware"
	"resume-editor/internal/shared/server/respond"
	"resume-editor/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	DocumentsRepo    documents.Repo
	HistoryRepo      ledger.Repo
	DocumentsService *documents.Service
	SessionsService  *sessions.Service
	DocumentsHandler *documents.Handler
	SessionsHandler  *sessions.Handler
}

// Build prepares shared dependencies and registers routes. When no
// database is reachable the repos fall back to memory, which keeps local
// development and tests database-free.
func Build(cfg config.Config) (*App, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(context.Background(), conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
			conn.Close()
		} else {
			sqlDB = conn
		}
	}

	var docRepo documents.Repo
	var historyRepo ledger.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
		historyRepo = &ledger.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
		historyRepo = ledger.NewMemoryRepo()
	}

	docSvc := &documents.Service{Repo: docRepo}
	sessSvc := sessions.NewService(docSvc, historyRepo, cfg.BulkStepDelay, cfg.SaveDebounce)

	docHandler := documents.NewHandler(docSvc)
	sessHandler := sessions.NewHandler(sessSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	docHandler.RegisterRoutes(api)
	sessHandler.RegisterRoutes(api)

	return &App{
		Config:           cfg,
		Router:           r,
		DB:               sqlDB,
		DocumentsRepo:    docRepo,
		HistoryRepo:      historyRepo,
		DocumentsService: docSvc,
		SessionsService:  sessSvc,
		DocumentsHandler: docHandler,
		SessionsHandler:  sessHandler,
	}, nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
