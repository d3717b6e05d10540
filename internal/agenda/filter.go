package agenda

import "strings"

// Filter returns the contacts whose name, phone and email, concatenated in
// that order without a separator, contain query case-insensitively.
// An empty query matches every contact. The result keeps source order and
// contacts is never modified.
func Filter(contacts []Contact, query string) []Contact {
	q := strings.ToLower(query)

	out := make([]Contact, 0, len(contacts))

	for _, c := range contacts {
		if q == "" || strings.Contains(searchText(c), q) {
			out = append(out, c)
		}
	}

	return out
}

func searchText(c Contact) string {
	return strings.ToLower(c.Name + c.Phone + c.Email)
}
