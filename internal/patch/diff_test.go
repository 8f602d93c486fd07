package patch

import (
	"strings"
	"testing"
)

func TestStripTrailingEmptyParagraphs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no artifacts", "<p>Kept</p>", "<p>Kept</p>"},
		{"single empty paragraph", "<p>Kept</p><p></p>", "<p>Kept</p>"},
		{"stacked artifacts", "<p>Kept</p><p></p>\n<p><br></p><p>&nbsp;</p>", "<p>Kept</p>"},
		{"interior empty paragraph kept", "<p></p><p>Kept</p>", "<p></p><p>Kept</p>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripTrailingEmptyParagraphs(tc.in); got != tc.want {
				t.Fatalf("StripTrailingEmptyParagraphs(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderDiff(t *testing.T) {
	got := RenderDiff("<p>old line</p>", "<p>new line</p>", "prop-1")

	want := `<span data-suggestion-id="prop-1">` +
		`<span data-diff="removed" style="background-color:#fecaca;text-decoration:line-through;"><p>old line</p></span>` +
		`<span data-diff="added" style="background-color:#bbf7d0;"><p>new line</p></span>` +
		`</span>`
	if got != want {
		t.Fatalf("RenderDiff:\n got %q\nwant %q", got, want)
	}
}

func TestRenderDiffStripsRoundTripArtifacts(t *testing.T) {
	got := RenderDiff("<p>old</p><p></p>", "<p>new</p><p><br></p>", "prop-2")

	if strings.Contains(got, "<p></p>") || strings.Contains(got, "<p><br></p>") {
		t.Fatalf("diff wrapper retained empty paragraphs: %q", got)
	}
}

func TestRenderInlineDiffMarksInsertionsAndDeletions(t *testing.T) {
	got := RenderInlineDiff("Managed a team", "Led a team")

	if !strings.Contains(got, "<del>") || !strings.Contains(got, "<ins>") {
		t.Fatalf("expected <del> and <ins> markers, got %q", got)
	}
	if !strings.Contains(got, "a team") {
		t.Fatalf("expected unchanged run to survive, got %q", got)
	}
}

func TestRenderInlineDiffEscapesMarkup(t *testing.T) {
	got := RenderInlineDiff("<p>old</p>", "<p>new</p>")

	if strings.Contains(got, "<p>") {
		t.Fatalf("expected raw markup to be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;p&gt;") {
		t.Fatalf("expected escaped markup, got %q", got)
	}
}
