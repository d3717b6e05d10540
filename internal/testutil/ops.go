// Package testutil provides operations and a reference model for
// model-vs-repository behavior tests.
package testutil

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// Op is one generated operation. Apply runs it against both the repository
// and the model and reports any disagreement.
type Op interface {
	String() string
	Apply(h *Harness) error
}

// OpAdd creates a contact without an ID.
type OpAdd struct {
	Fields agenda.Fields
}

func (o *OpAdd) String() string { return fmt.Sprintf("add name=%q", o.Fields.Name) }

func (o *OpAdd) Apply(h *Harness) error {
	return applyUpsert(h, "", o.Fields)
}

// OpUpdate upserts an existing contact by ID.
type OpUpdate struct {
	ID     string
	Fields agenda.Fields
}

func (o *OpUpdate) String() string { return fmt.Sprintf("update %s name=%q", o.ID, o.Fields.Name) }

func (o *OpUpdate) Apply(h *Harness) error {
	return applyUpsert(h, o.ID, o.Fields)
}

// OpUpsertUnknown upserts with an ID that does not exist.
type OpUpsertUnknown struct {
	ID     string
	Fields agenda.Fields
}

func (o *OpUpsertUnknown) String() string { return "upsert unknown " + o.ID }

func (o *OpUpsertUnknown) Apply(h *Harness) error {
	return applyUpsert(h, o.ID, o.Fields)
}

func applyUpsert(h *Harness, id string, fields agenda.Fields) error {
	if !Storable(fields) {
		_, err := h.Repo.Upsert(fields, id)
		if !errors.Is(err, agenda.ErrInvalidValue) {
			return fmt.Errorf("upsert of unstorable fields err=%v, want ErrInvalidValue", err)
		}

		return nil
	}

	c, err := h.Repo.Upsert(fields, id)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}

	if c.Fields != fields {
		return fmt.Errorf("upsert returned fields %+v, want %+v", c.Fields, fields)
	}

	if id != "" && h.Model.Replace(id, fields) {
		if c.ID != id {
			return fmt.Errorf("update of %s returned id %s", id, c.ID)
		}

		return nil
	}

	if c.ID == "" || c.ID == id || h.Model.Has(c.ID) {
		return fmt.Errorf("create returned id %q, not fresh (requested %q, existing %v)", c.ID, id, h.Model.IDs())
	}

	h.Model.Append(c)

	return nil
}

// OpDelete deletes by ID; the ID may or may not exist.
type OpDelete struct {
	ID string
}

func (o *OpDelete) String() string { return "delete " + o.ID }

func (o *OpDelete) Apply(h *Harness) error {
	before, err := h.Repo.Export()
	if err != nil {
		return err
	}

	removed, err := h.Repo.Delete(o.ID)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	want := h.Model.Delete(o.ID)
	if removed != want {
		return fmt.Errorf("delete %s removed=%v, want %v", o.ID, removed, want)
	}

	if !removed {
		after, err := h.Repo.Export()
		if err != nil {
			return err
		}

		if string(after) != string(before) {
			return errors.New("deleting a missing id changed the document")
		}
	}

	return nil
}

// OpSearch filters the list.
type OpSearch struct {
	Query string
}

func (o *OpSearch) String() string { return fmt.Sprintf("search %q", o.Query) }

func (o *OpSearch) Apply(h *Harness) error {
	var got []string
	for _, c := range h.Repo.Search(o.Query) {
		got = append(got, c.ID)
	}

	if diff := cmp.Diff(h.Model.Search(o.Query), got, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("search %q mismatch (-model +real):\n%s", o.Query, diff)
	}

	return nil
}

// OpImport replaces the document with generated contacts.
type OpImport struct {
	Contacts    []agenda.Contact
	ForeignRoot bool
	Allow       bool
}

func (o *OpImport) String() string {
	return fmt.Sprintf("import %d contacts foreign=%v allow=%v", len(o.Contacts), o.ForeignRoot, o.Allow)
}

func (o *OpImport) Apply(h *Harness) error {
	doc, err := agenda.NewDocument(o.Contacts...)

	for _, c := range o.Contacts {
		if !Storable(c.Fields) {
			if !errors.Is(err, agenda.ErrInvalidValue) {
				return fmt.Errorf("document with unstorable fields err=%v, want ErrInvalidValue", err)
			}

			return nil
		}
	}

	if err != nil {
		return fmt.Errorf("build import document: %w", err)
	}

	data, err := doc.Serialize()
	if err != nil {
		return err
	}

	if o.ForeignRoot {
		text := strings.Replace(string(data), "<agenda>", "<book>", 1)
		text = strings.Replace(text, "</agenda>", "</book>", 1)
		data = []byte(text)
	}

	n, err := h.Repo.Import(data, o.Allow)

	if o.ForeignRoot && !o.Allow {
		if !errors.Is(err, agenda.ErrUnexpectedRoot) {
			return fmt.Errorf("foreign import err=%v, want ErrUnexpectedRoot", err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if n != len(o.Contacts) {
		return fmt.Errorf("import count=%d, want %d", n, len(o.Contacts))
	}

	h.Model.Set(o.Contacts)

	return nil
}

// OpImportGarbage imports data that can never parse.
type OpImportGarbage struct {
	Data string
}

func (o *OpImportGarbage) String() string { return fmt.Sprintf("import garbage %q", o.Data) }

func (o *OpImportGarbage) Apply(h *Harness) error {
	_, err := h.Repo.Import([]byte(o.Data), true)
	if !errors.Is(err, agenda.ErrParse) {
		return fmt.Errorf("garbage import err=%v, want ErrParse", err)
	}

	return nil
}

// OpReopen reloads the repository from the store.
type OpReopen struct{}

func (*OpReopen) String() string { return "reopen" }

func (*OpReopen) Apply(h *Harness) error {
	h.Reopen()

	if h.Repo.Recovered() {
		return errors.New("reopen found an unreadable document")
	}

	return nil
}

// CompareState checks the repository, the stored bytes and the model agree.
func CompareState(h *Harness, history []string) error {
	want := h.Model.Contacts()

	if diff := cmp.Diff(want, h.Repo.All(), cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("state mismatch (-model +real):\n%s\n%s", diff, FormatOps(history))
	}

	data, err := h.Store.Get(h.Repo.Key())
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}

	stored, err := agenda.Parse(data)
	if err != nil {
		return fmt.Errorf("stored document does not parse: %w\n%s", err, FormatOps(history))
	}

	if diff := cmp.Diff(want, stored.Contacts(), cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("stored mismatch (-model +stored):\n%s\n%s", diff, FormatOps(history))
	}

	ids := h.Model.IDs()
	slices.Sort(ids)

	if len(slices.Compact(ids)) != len(want) {
		return fmt.Errorf("duplicate ids %v\n%s", h.Model.IDs(), FormatOps(history))
	}

	return nil
}

// FormatOps renders an operation history for failure messages.
func FormatOps(history []string) string {
	var b strings.Builder

	b.WriteString("ops:\n")

	for i, op := range history {
		fmt.Fprintf(&b, "  %3d. %s\n", i+1, op)
	}

	return b.String()
}
