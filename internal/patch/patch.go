// Package patch implements the fragment-level edit engine for HTML resume
// documents: locating a candidate fragment, applying a replacement either
// by element id or by first-occurrence substring, and rendering review
// diffs for proposed changes.
package patch

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrFragmentNotFound indicates the old fragment is no longer present
	// in the document (it changed since the proposal was generated).
	ErrFragmentNotFound = errors.New("fragment not found in document")

	// ErrTargetNotFound indicates no element carries the requested id.
	ErrTargetNotFound = errors.New("target element not found in document")
)

// Locate reports whether fragment occurs verbatim in document after
// trimming leading/trailing whitespace. An empty fragment never locates;
// a vacuous match would let a malformed proposal patch arbitrary content.
func Locate(document, fragment string) bool {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return false
	}
	return strings.Contains(document, trimmed)
}

// Apply replaces oldFragment with newFragment inside document and returns
// the updated document. When targetElementID is non-empty the element
// carrying that id attribute is replaced in the parsed tree; substring
// matching is never used as a fallback, so repeated fragments elsewhere in
// the document cannot be patched by mistake. Without a target id, the
// first occurrence of oldFragment is replaced and the rest of the document
// is left untouched byte for byte.
//
// On any failure the original document is returned unmodified.
func Apply(document, oldFragment, newFragment, targetElementID string) (string, error) {
	if targetElementID != "" {
		return applyByID(document, newFragment, targetElementID)
	}

	old := strings.TrimSpace(oldFragment)
	if !Locate(document, old) {
		return document, ErrFragmentNotFound
	}
	return strings.Replace(document, old, strings.TrimSpace(newFragment), 1), nil
}

func applyByID(document, newFragment, targetElementID string) (string, error) {
	body, err := parseBody(document)
	if err != nil {
		return document, err
	}

	target := findByID(body, targetElementID)
	if target == nil {
		return document, ErrTargetNotFound
	}

	replacement, err := parseBody(strings.TrimSpace(newFragment))
	if err != nil {
		return document, err
	}

	// A replacement fragment may parse to several top-level nodes; splice
	// them all in place of the single target node.
	parent := target.Parent
	for replacement.FirstChild != nil {
		node := replacement.FirstChild
		replacement.RemoveChild(node)
		parent.InsertBefore(node, target)
	}
	parent.RemoveChild(target)

	out, err := renderChildren(body)
	if err != nil {
		return document, err
	}
	return out, nil
}

// parseBody parses s as body content and reparents the resulting nodes
// under a synthetic body element so they can be spliced in place.
func parseBody(s string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return nil, err
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, node := range nodes {
		body.AppendChild(node)
	}
	return body, nil
}

func findByID(node *html.Node, id string) *html.Node {
	if node.Type == html.ElementNode {
		for _, attr := range node.Attr {
			if attr.Key == "id" && attr.Val == id {
				return node
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func renderChildren(body *html.Node) (string, error) {
	var sb strings.Builder
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&sb, child); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
