// Package agenda implements the address book core: the contact document, its
// XML encoding, the repository that owns and persists it, search, the
// add/edit form, and whole-document import and export.
//
// A [Repository] is the only writer of its [Document]. Every mutating call
// works on a copy, persists the serialized copy through a [store.Store], and
// only then makes the copy current, so a failed write leaves both memory and
// storage untouched. Callers get value copies of contacts and never hold
// references into the live document.
//
// The package is synchronous and not safe for concurrent use.
package agenda
