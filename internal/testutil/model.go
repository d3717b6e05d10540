package testutil

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// Model is a deliberately naive reference address book. The real
// [agenda.Repository] must behave exactly like it.
type Model struct {
	contacts []agenda.Contact
}

// NewModel returns a model holding the default contact, like a fresh store.
func NewModel() *Model {
	return &Model{contacts: []agenda.Contact{agenda.DefaultContact()}}
}

// Contacts returns a copy of the contacts in order.
func (m *Model) Contacts() []agenda.Contact {
	return slices.Clone(m.contacts)
}

// IDs returns the contact IDs in order.
func (m *Model) IDs() []string {
	ids := make([]string, 0, len(m.contacts))
	for _, c := range m.contacts {
		ids = append(ids, c.ID)
	}

	return ids
}

// Has reports whether id exists.
func (m *Model) Has(id string) bool {
	return slices.ContainsFunc(m.contacts, func(c agenda.Contact) bool { return c.ID == id })
}

// Replace overwrites the fields of an existing contact. Returns false if absent.
func (m *Model) Replace(id string, fields agenda.Fields) bool {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts[i].Fields = fields

			return true
		}
	}

	return false
}

// Append adds a contact at the end.
func (m *Model) Append(c agenda.Contact) {
	m.contacts = append(m.contacts, c)
}

// Delete removes id. Returns false if absent.
func (m *Model) Delete(id string) bool {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts = append(m.contacts[:i:i], m.contacts[i+1:]...)

			return true
		}
	}

	return false
}

// Set replaces every contact.
func (m *Model) Set(contacts []agenda.Contact) {
	m.contacts = slices.Clone(contacts)
}

// Search returns the IDs of contacts matching query.
func (m *Model) Search(query string) []string {
	q := strings.ToLower(query)

	var ids []string

	for _, c := range m.contacts {
		haystack := strings.ToLower(c.Name) + strings.ToLower(c.Phone) + strings.ToLower(c.Email)
		if strings.Contains(haystack, q) {
			ids = append(ids, c.ID)
		}
	}

	return ids
}

// Storable reports whether every value in fields survives the XML document:
// valid UTF-8 with no control characters besides tab, newline and carriage
// return.
func Storable(fields agenda.Fields) bool {
	for _, f := range agenda.AllFields {
		v := fields.Get(f)
		if !utf8.ValidString(v) {
			return false
		}

		for _, r := range v {
			if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
				return false
			}
		}
	}

	return true
}
