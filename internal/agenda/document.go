package agenda

import (
	"fmt"
	"slices"
	"strconv"
)

// Document is the ordered collection of contacts that makes up an address
// book. Insertion order is display order.
//
// The zero value is not usable; create documents with [NewDocument] or [Parse].
type Document struct {
	root     string
	space    string // namespace of the root element, empty when none
	contacts []Contact
}

// NewDocument returns a document with the default root element holding
// contacts in the given order. Contacts with empty or repeated IDs, or with
// values XML cannot carry, are rejected.
func NewDocument(contacts ...Contact) (*Document, error) {
	doc := &Document{root: RootElement, contacts: make([]Contact, 0, len(contacts))}

	for _, c := range contacts {
		err := doc.Append(c)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// DefaultDocument returns the single-record document used when nothing
// usable is stored.
func DefaultDocument() *Document {
	return &Document{root: RootElement, contacts: []Contact{DefaultContact()}}
}

// Root returns the local name of the root element.
func (d *Document) Root() string {
	return d.root
}

// Namespace returns the namespace of the root element, or "" when the root
// has none.
func (d *Document) Namespace() string {
	return d.space
}

// IsAgenda reports whether the root element is a plain, un-namespaced
// <agenda>.
func (d *Document) IsAgenda() bool {
	return d.root == RootElement && d.space == ""
}

// qualifiedRoot names the root element for messages.
func (d *Document) qualifiedRoot() string {
	if d.space == "" {
		return d.root
	}

	return d.root + " xmlns=" + strconv.Quote(d.space)
}

// Len returns the number of contacts.
func (d *Document) Len() int {
	return len(d.contacts)
}

// Contacts returns a copy of the contacts in document order.
func (d *Document) Contacts() []Contact {
	return slices.Clone(d.contacts)
}

// FindByID returns the contact with the given ID.
func (d *Document) FindByID(id string) (Contact, bool) {
	i := d.index(id)
	if i < 0 {
		return Contact{}, false
	}

	return d.contacts[i], true
}

// Has reports whether a contact with the given ID exists.
func (d *Document) Has(id string) bool {
	return d.index(id) >= 0
}

// Append adds c at the end of the document.
func (d *Document) Append(c Contact) error {
	if c.ID == "" {
		return ErrIDRequired
	}

	if d.Has(c.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}

	err := checkXMLText(c.ID)
	if err != nil {
		return fmt.Errorf("%w: id: %w", ErrInvalidValue, err)
	}

	err = c.Fields.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	d.contacts = append(d.contacts, c)

	return nil
}

// Remove deletes the contact with the given ID. Returns false if absent.
func (d *Document) Remove(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}

	d.contacts = slices.Delete(d.contacts, i, i+1)

	return true
}

// SetField sets one field of the contact with the given ID.
// Returns false if the contact or the field does not exist.
func (d *Document) SetField(id string, field Field, value string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}

	return d.contacts[i].Set(field, value)
}

// replaceFields overwrites every editable field of the contact with the given ID.
func (d *Document) replaceFields(id string, fields Fields) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}

	d.contacts[i].Fields = fields

	return true
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{root: d.root, space: d.space, contacts: slices.Clone(d.contacts)}
}

// maxNumericID returns the largest contact ID that is a decimal integer.
func (d *Document) maxNumericID() (int64, bool) {
	var (
		high  int64
		found bool
	)

	for _, c := range d.contacts {
		n, err := strconv.ParseInt(c.ID, 10, 64)
		if err == nil && (!found || n > high) {
			high, found = n, true
		}
	}

	return high, found
}

func (d *Document) index(id string) int {
	if id == "" {
		return -1
	}

	return slices.IndexFunc(d.contacts, func(c Contact) bool { return c.ID == id })
}
