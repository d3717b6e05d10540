package agenda

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// xmlHeader is written before the root element of every serialized document.
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

type xmlDocument struct {
	XMLName  xml.Name
	Contacts []xmlContact `xml:"contact"`
}

type xmlContact struct {
	ID        string `xml:"id,attr"`
	Name      string `xml:"name"`
	Address   string `xml:"address"`
	Email     string `xml:"email"`
	Phone     string `xml:"phone"`
	Picture   string `xml:"picture"`
	Birthdate string `xml:"birthdate"`
	Sex       string `xml:"sex"`
}

// Validate implements [validation.Validatable].
func (c xmlContact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required.Error("id attribute is required")),
	)
}

// Parse decodes an XML address book.
//
// The root element may have any name; callers that care use [Document.Root].
// Contacts are the root's <contact> children. Missing child elements read as
// empty strings, and unknown elements and attributes are ignored. Malformed
// XML, text outside the root element, contacts without an id and repeated
// ids are reported as errors wrapping [ErrParse]; no partial document is
// ever returned.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	start, err := rootStart(dec)
	if err != nil {
		return nil, err
	}

	var raw xmlDocument

	err = dec.DecodeElement(&raw, &start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	err = expectEnd(dec)
	if err != nil {
		return nil, err
	}

	doc := &Document{root: raw.XMLName.Local, space: raw.XMLName.Space, contacts: make([]Contact, 0, len(raw.Contacts))}

	for i, rc := range raw.Contacts {
		err = rc.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w: contact #%d: %w", ErrParse, i+1, err)
		}

		err = doc.Append(Contact{
			ID: rc.ID,
			Fields: Fields{
				Name:      rc.Name,
				Address:   rc.Address,
				Email:     rc.Email,
				Phone:     rc.Phone,
				Picture:   rc.Picture,
				Birthdate: rc.Birthdate,
				Sex:       rc.Sex,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: contact #%d: %w", ErrParse, i+1, err)
		}
	}

	return doc, nil
}

// rootStart advances dec to the root element, allowing only the prolog
// (declaration, comments, doctype, whitespace) before it.
func rootStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, fmt.Errorf("%w: no root element", ErrParse)
		}

		if err != nil {
			return xml.StartElement{}, fmt.Errorf("%w: %w", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return xml.StartElement{}, fmt.Errorf("%w: text before root element", ErrParse)
			}
		case xml.ProcInst, xml.Comment, xml.Directive:
		default:
			return xml.StartElement{}, fmt.Errorf("%w: unexpected %T before root element", ErrParse, tok)
		}
	}
}

// expectEnd checks that nothing but whitespace, comments and processing
// instructions follows the root element.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("%w: %w", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("%w: text after root element", ErrParse)
			}
		case xml.ProcInst, xml.Comment:
		default:
			return fmt.Errorf("%w: content after root element", ErrParse)
		}
	}
}

// Serialize encodes d as an indented XML document with a declaration.
// Parse(Serialize(d)) yields the same contacts in the same order.
func (d *Document) Serialize() ([]byte, error) {
	raw := xmlDocument{
		XMLName:  xml.Name{Space: d.space, Local: d.root},
		Contacts: make([]xmlContact, 0, len(d.contacts)),
	}

	for _, c := range d.contacts {
		raw.Contacts = append(raw.Contacts, xmlContact{
			ID:        c.ID,
			Name:      c.Name,
			Address:   c.Address,
			Email:     c.Email,
			Phone:     c.Phone,
			Picture:   c.Picture,
			Birthdate: c.Birthdate,
			Sex:       c.Sex,
		})
	}

	var buf bytes.Buffer

	buf.WriteString(xmlHeader)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	err := enc.Encode(raw)
	if err != nil {
		return nil, fmt.Errorf("encode agenda: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode agenda: %w", err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
