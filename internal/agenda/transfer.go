package agenda

import "fmt"

// Import replaces the whole document with the one encoded in data and
// persists it. It returns the number of imported contacts.
//
// Unparsable data is rejected with an error wrapping [ErrParse]. A document
// whose root element is not a plain <agenda> is rejected with
// [ErrUnexpectedRoot] unless allowForeignRoot is set, which is how a caller
// passes on the user's confirmation. A namespaced root counts as foreign even
// when its local name is agenda. Rejected imports change nothing.
func (r *Repository) Import(data []byte, allowForeignRoot bool) (int, error) {
	doc, err := Parse(data)
	if err != nil {
		return 0, err
	}

	if !doc.IsAgenda() && !allowForeignRoot {
		return 0, fmt.Errorf("%w: found <%s>", ErrUnexpectedRoot, doc.qualifiedRoot())
	}

	err = r.commit(doc)
	if err != nil {
		return 0, err
	}

	r.log.Info("imported agenda", "contacts", doc.Len(), "root", doc.qualifiedRoot())

	return doc.Len(), nil
}

// Export returns the serialized current document. After any write through
// the repository this equals the stored bytes; a hand-written stored document
// comes back normalized.
func (r *Repository) Export() ([]byte, error) {
	return r.doc.Serialize()
}
