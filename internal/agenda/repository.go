package agenda

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/calvinalkan/agenda/internal/store"
)

// corruptSuffix is appended to the storage key to keep a copy of an
// unreadable document before it is replaced by the default.
const corruptSuffix = ".corrupt"

// Repository owns the address book document and is the only component that
// mutates or persists it. Every mutating method writes the full serialized
// document to the store before returning.
type Repository struct {
	store store.Store
	key   string
	ids   IDGenerator
	log   hclog.Logger
	doc   *Document

	recovered bool
}

// Option configures a [Repository].
type Option func(*Repository)

// WithKey sets the store key the document is persisted under.
func WithKey(key string) Option {
	return func(r *Repository) { r.key = key }
}

// WithIDGenerator sets the strategy for new contact IDs.
func WithIDGenerator(gen IDGenerator) Option {
	return func(r *Repository) { r.ids = gen }
}

// WithLogger sets the logger for load and persistence events.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Repository) { r.log = logger }
}

// Open loads the document from s.
//
// When nothing is stored under the key the default document is created and
// persisted. When the stored value cannot be parsed, a warning is logged,
// the raw value is copied to "<key>.corrupt", and the default document is
// persisted in its place. Only store failures are returned as errors.
func Open(s store.Store, opts ...Option) (*Repository, error) {
	r := &Repository{
		store: s,
		key:   DefaultStorageKey,
		ids:   NewTimestampIDs(nil),
		log:   hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	err := store.ValidateKey(r.key)
	if err != nil {
		return nil, fmt.Errorf("open agenda: %w", err)
	}

	err = r.load()
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Repository) load() error {
	data, err := r.store.Get(r.key)
	if errors.Is(err, store.ErrNotFound) {
		r.log.Debug("no stored agenda, seeding default", "key", r.key)

		return r.commit(DefaultDocument())
	}

	if err != nil {
		return fmt.Errorf("load agenda: %w", err)
	}

	doc, parseErr := Parse(data)
	if parseErr == nil {
		r.doc = doc

		return nil
	}

	r.log.Warn("saved agenda is unreadable, loading default", "key", r.key, "error", parseErr)

	backupKey := r.key + corruptSuffix

	backupErr := r.store.Set(backupKey, data)
	if backupErr != nil {
		r.log.Warn("could not keep a copy of the unreadable agenda", "key", backupKey, "error", backupErr)
	} else {
		r.log.Warn("unreadable agenda copied", "key", backupKey)
	}

	r.recovered = true

	return r.commit(DefaultDocument())
}

// commit persists next and makes it the current document.
// On failure the current document is left as it was.
func (r *Repository) commit(next *Document) error {
	data, err := next.Serialize()
	if err != nil {
		return err
	}

	err = r.store.Set(r.key, data)
	if err != nil {
		return fmt.Errorf("save agenda: %w", err)
	}

	r.doc = next
	r.log.Debug("saved agenda", "key", r.key, "contacts", next.Len(), "bytes", len(data))

	return nil
}

// Key returns the store key of the document.
func (r *Repository) Key() string {
	return r.key
}

// Recovered reports whether Open found an unreadable stored document and
// replaced it with the default one.
func (r *Repository) Recovered() bool {
	return r.recovered
}

// Upsert creates or updates a contact.
//
// If id names an existing contact, all of its editable fields are replaced
// by fields; this is a full replace, so zero-valued fields clear stored
// values. Otherwise, including when id is empty, a new contact with a freshly
// generated ID is appended. The resulting contact is returned after the
// document has been persisted.
//
// Values the XML document cannot store unchanged (invalid UTF-8, control
// characters other than tab, newline and carriage return) are rejected with
// [ErrInvalidValue] before anything is written.
func (r *Repository) Upsert(fields Fields, id string) (Contact, error) {
	err := fields.Validate()
	if err != nil {
		return Contact{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	next := r.doc.Clone()

	if next.replaceFields(id, fields) {
		err = r.commit(next)
		if err != nil {
			return Contact{}, err
		}

		return Contact{ID: id, Fields: fields}, nil
	}

	newID, err := uniqueID(next, r.ids)
	if err != nil {
		return Contact{}, err
	}

	created := Contact{ID: newID, Fields: fields}

	err = next.Append(created)
	if err != nil {
		return Contact{}, err
	}

	err = r.commit(next)
	if err != nil {
		return Contact{}, err
	}

	return created, nil
}

// Delete removes the contact with the given ID and persists the document.
// Deleting an unknown ID is a no-op that returns false without writing.
func (r *Repository) Delete(id string) (bool, error) {
	if !r.doc.Has(id) {
		return false, nil
	}

	next := r.doc.Clone()
	next.Remove(id)

	err := r.commit(next)
	if err != nil {
		return false, err
	}

	return true, nil
}

// All returns every contact in document order.
func (r *Repository) All() []Contact {
	return r.doc.Contacts()
}

// Get returns the contact with the given ID.
func (r *Repository) Get(id string) (Contact, bool) {
	return r.doc.FindByID(id)
}

// Search returns the contacts matching query, as [Filter] does.
func (r *Repository) Search(query string) []Contact {
	return Filter(r.doc.Contacts(), query)
}

// Snapshot returns a copy of the current document.
func (r *Repository) Snapshot() *Document {
	return r.doc.Clone()
}
