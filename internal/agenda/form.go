package agenda

import "fmt"

// FormMode tells whether a form creates a new contact or edits an existing one.
type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

func (m FormMode) String() string {
	if m == ModeEdit {
		return "edit"
	}

	return "add"
}

// FormState is the lifecycle state of a [Form].
type FormState int

const (
	StateEditing FormState = iota
	StateSubmitted
	StateCancelled
	StateDeleted
)

func (s FormState) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StateCancelled:
		return "cancelled"
	case StateDeleted:
		return "deleted"
	default:
		return "editing"
	}
}

// Form holds the editable copy of one contact between opening and a final
// submit, cancel or delete. It talks only to the [Repository].
//
// Submitting always sends every field, so a cleared input clears the stored
// value.
type Form struct {
	repo   *Repository
	mode   FormMode
	id     string
	fields Fields
	state  FormState
}

// NewAddForm opens an empty form for a new contact.
func NewAddForm(repo *Repository) *Form {
	return &Form{repo: repo, mode: ModeAdd}
}

// OpenEditForm opens a form pre-populated with the contact's current values.
// An unknown id yields [ErrContactNotFound] and no form.
func OpenEditForm(repo *Repository, id string) (*Form, error) {
	c, ok := repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}

	return &Form{repo: repo, mode: ModeEdit, id: c.ID, fields: c.Fields}, nil
}

// Mode returns whether the form adds or edits.
func (f *Form) Mode() FormMode { return f.mode }

// ID returns the bound contact ID; empty for an add form until submitted.
func (f *Form) ID() string { return f.id }

// State returns the current lifecycle state.
func (f *Form) State() FormState { return f.state }

// Fields returns the current field values.
func (f *Form) Fields() Fields { return f.fields }

// Get returns the current value of one field.
func (f *Form) Get(field Field) string { return f.fields.Get(field) }

// Set changes one field value.
func (f *Form) Set(field Field, value string) error {
	if f.state != StateEditing {
		return ErrFormClosed
	}

	if !f.fields.Set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return nil
}

// SetPicture stores an already-acquired picture payload as is.
func (f *Form) SetPicture(payload string) error {
	return f.Set(FieldPicture, payload)
}

// ClearPicture removes the picture.
func (f *Form) ClearPicture() error {
	return f.Set(FieldPicture, "")
}

// Submit saves the form through [Repository.Upsert] and closes it.
// If saving fails the form stays open so the caller can retry or cancel.
func (f *Form) Submit() (Contact, error) {
	if f.state != StateEditing {
		return Contact{}, ErrFormClosed
	}

	c, err := f.repo.Upsert(f.fields, f.id)
	if err != nil {
		return Contact{}, err
	}

	f.id = c.ID
	f.state = StateSubmitted

	return c, nil
}

// Cancel discards the edits and closes the form without touching the document.
func (f *Form) Cancel() error {
	if f.state != StateEditing {
		return ErrFormClosed
	}

	f.state = StateCancelled

	return nil
}

// Delete removes the edited contact and closes the form. Only edit forms can
// delete. Returns false if the contact had already disappeared.
func (f *Form) Delete() (bool, error) {
	if f.state != StateEditing {
		return false, ErrFormClosed
	}

	if f.mode != ModeEdit {
		return false, ErrDeleteInAddMode
	}

	removed, err := f.repo.Delete(f.id)
	if err != nil {
		return false, err
	}

	f.state = StateDeleted

	return removed, nil
}
