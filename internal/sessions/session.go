// Package sessions hosts the editor session: the single owner of a live
// HTML document, reconciling externally generated change proposals
// against it through the patch engine and the change ledger.
package sessions

import (
	"sync"
	"time"

	"resume-editor/internal/ledger"
	"resume-editor/internal/shared/util"
)

// Session owns the live HTML for one document. All reads and writes go
// through the owning Service while holding mu, which gives the document
// exactly one writer by construction. The busy flag is set for the
// duration of a bulk resolve and disables individual decisions.
type Session struct {
	ID         string
	DocumentID string
	CreatedAt  time.Time

	mu     sync.Mutex
	html   string
	ledger *ledger.Ledger
	busy   bool
	saver  *util.Debouncer
}
