package agenda

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field identifies one editable contact field.
type Field int

// Editable fields, in serialization order.
const (
	FieldName Field = iota
	FieldAddress
	FieldEmail
	FieldPhone
	FieldPicture
	FieldBirthdate
	FieldSex
)

// AllFields lists every editable field in serialization order.
var AllFields = []Field{
	FieldName,
	FieldAddress,
	FieldEmail,
	FieldPhone,
	FieldPicture,
	FieldBirthdate,
	FieldSex,
}

var fieldNames = [...]string{
	FieldName:      "name",
	FieldAddress:   "address",
	FieldEmail:     "email",
	FieldPhone:     "phone",
	FieldPicture:   "picture",
	FieldBirthdate: "birthdate",
	FieldSex:       "sex",
}

// String returns the element name used for the field in the document.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}

	return fieldNames[f]
}

// ParseField maps an element or flag name to a [Field].
func ParseField(name string) (Field, error) {
	lower := strings.ToLower(strings.TrimSpace(name))

	for i, n := range fieldNames {
		if n == lower {
			return Field(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Fields holds the editable values of a contact. Every value is an opaque
// string; the zero value is an empty contact.
type Fields struct {
	Name      string
	Address   string
	Email     string
	Phone     string
	Picture   string // embedded image payload (usually a data URL), never interpreted
	Birthdate string
	Sex       string
}

// Validate reports values the XML document cannot store unchanged.
func (fs *Fields) Validate() error {
	return validation.ValidateStruct(fs,
		validation.Field(&fs.Name, xmlText),
		validation.Field(&fs.Address, xmlText),
		validation.Field(&fs.Email, xmlText),
		validation.Field(&fs.Phone, xmlText),
		validation.Field(&fs.Picture, xmlText),
		validation.Field(&fs.Birthdate, xmlText),
		validation.Field(&fs.Sex, xmlText),
	)
}

// xmlText accepts valid UTF-8 made only of characters XML 1.0 allows.
// Anything else would be replaced by U+FFFD when serialized.
var xmlText = validation.By(func(value any) error {
	s, _ := value.(string)

	return checkXMLText(s)
})

var errInvalidUTF8 = errors.New("not valid UTF-8")

func checkXMLText(s string) error {
	if !utf8.ValidString(s) {
		return errInvalidUTF8
	}

	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U is not allowed in XML", r)
		}
	}

	return nil
}

// isXMLChar reports whether r matches the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= utf8.MaxRune)
}

// Get returns the value of f.
func (fs *Fields) Get(f Field) string {
	switch f {
	case FieldName:
		return fs.Name
	case FieldAddress:
		return fs.Address
	case FieldEmail:
		return fs.Email
	case FieldPhone:
		return fs.Phone
	case FieldPicture:
		return fs.Picture
	case FieldBirthdate:
		return fs.Birthdate
	case FieldSex:
		return fs.Sex
	default:
		return ""
	}
}

// Set assigns value to f. Returns false for an unknown field.
func (fs *Fields) Set(f Field, value string) bool {
	switch f {
	case FieldName:
		fs.Name = value
	case FieldAddress:
		fs.Address = value
	case FieldEmail:
		fs.Email = value
	case FieldPhone:
		fs.Phone = value
	case FieldPicture:
		fs.Picture = value
	case FieldBirthdate:
		fs.Birthdate = value
	case FieldSex:
		fs.Sex = value
	default:
		return false
	}

	return true
}

// Contact is one address book entry. ID is assigned at creation and never
// changes afterwards.
type Contact struct {
	ID string
	Fields
}

// DefaultContact is the record a new or unrecoverable document is seeded with.
func DefaultContact() Contact {
	return Contact{
		ID: "1",
		Fields: Fields{
			Name:      "John Doe",
			Address:   "123 Main St",
			Email:     "john@example.com",
			Phone:     "+1 555 1234",
			Picture:   "",
			Birthdate: "1980-05-12",
			Sex:       "M",
		},
	}
}
