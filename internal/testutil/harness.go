package testutil

import (
	"testing"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/store"
)

// Harness wires together a real repository over an in-memory store and the
// reference model.
type Harness struct {
	TB    testing.TB
	Store *store.Memory
	Repo  *agenda.Repository
	Model *Model
}

// NewHarness opens a repository on an empty store.
func NewHarness(tb testing.TB) *Harness {
	tb.Helper()

	h := &Harness{
		TB:    tb,
		Store: store.NewMemory(),
		Model: NewModel(),
	}

	h.Reopen()

	return h
}

// Reopen loads the repository again from what the store holds.
func (h *Harness) Reopen() {
	h.TB.Helper()

	repo, err := agenda.Open(h.Store)
	if err != nil {
		h.TB.Fatalf("open repository: %v", err)
	}

	h.Repo = repo
}
