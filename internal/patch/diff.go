package patch

import (
	"html"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	removedStyle = "background-color:#fecaca;text-decoration:line-through;"
	addedStyle   = "background-color:#bbf7d0;"
)

// Empty trailing paragraphs the rich-text engine appends on round-trips.
var trailingEmptyParagraphs = regexp.MustCompile(`(?i)(?:\s*<p>(?:\s|<br\s*/?>|&nbsp;)*</p>)+\s*$`)

// StripTrailingEmptyParagraphs removes blank <p> blocks from the end of a
// fragment. Without this, repeated accept/reject cycles accumulate blank
// lines in the visible document.
func StripTrailingEmptyParagraphs(fragment string) string {
	return trailingEmptyParagraphs.ReplaceAllString(fragment, "")
}

// RenderDiff produces the review wrapper for a proposed change: the old
// content marked for removal and the new content marked for addition,
// tagged with markupID so the wrapper can be found again when the change
// is accepted or rejected. Pure; the document itself is not touched.
func RenderDiff(oldFragment, newFragment, markupID string) string {
	old := StripTrailingEmptyParagraphs(strings.TrimSpace(oldFragment))
	updated := StripTrailingEmptyParagraphs(strings.TrimSpace(newFragment))

	var sb strings.Builder
	sb.WriteString(`<span data-suggestion-id="`)
	sb.WriteString(html.EscapeString(markupID))
	sb.WriteString(`">`)
	sb.WriteString(`<span data-diff="removed" style="` + removedStyle + `">`)
	sb.WriteString(old)
	sb.WriteString(`</span>`)
	sb.WriteString(`<span data-diff="added" style="` + addedStyle + `">`)
	sb.WriteString(updated)
	sb.WriteString(`</span>`)
	sb.WriteString(`</span>`)
	return sb.String()
}

// RenderInlineDiff produces a compact character-level <ins>/<del>
// rendering of the change for display next to the full diff wrapper.
func RenderInlineDiff(oldFragment, newFragment string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.TrimSpace(oldFragment), strings.TrimSpace(newFragment), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		text := html.EscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("<del>")
			sb.WriteString(text)
			sb.WriteString("</del>")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("<ins>")
			sb.WriteString(text)
			sb.WriteString("</ins>")
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}
