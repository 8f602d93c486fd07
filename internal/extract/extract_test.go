package extract

import (
	"context"
	"errors"
	"testing"
)

func TestTextRejectsEmptyData(t *testing.T) {
	if _, err := Text(context.Background(), nil); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestTextRejectsGarbage(t *testing.T) {
	if _, err := Text(context.Background(), []byte("not a pdf")); err == nil {
		t.Fatalf("expected error for non-PDF payload")
	}
}

func TestHTMLFromText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "Jane Doe", "<p>Jane Doe</p>"},
		{"multiple lines with blanks", "Jane Doe\n\n  Engineer \n", "<p>Jane Doe</p><p>Engineer</p>"},
		{"markup is escaped", "5 < 10 & counting", "<p>5 &lt; 10 &amp; counting</p>"},
		{"empty input", "  \n \n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTMLFromText(tc.in); got != tc.want {
				t.Fatalf("HTMLFromText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
