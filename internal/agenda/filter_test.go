package agenda_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/agenda/internal/agenda"
)

func ids(contacts []agenda.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.ID)
	}

	return out
}

func Test_Filter_Matches_Name_Phone_And_Email_Case_Insensitively(t *testing.T) {
	t.Parallel()

	contacts := []agenda.Contact{
		{ID: "1", Fields: agenda.Fields{Name: "Alice Smith", Phone: "555-0100", Email: "alice@example.com"}},
		{ID: "2", Fields: agenda.Fields{Name: "Bob", Phone: "555-0199", Email: "bob@work.org", Address: "Smith Street"}},
		{ID: "3", Fields: agenda.Fields{Name: "carol", Email: "CAROL@EXAMPLE.COM"}},
	}

	for _, tt := range []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{"1", "2", "3"}},
		{name: "name upper case", query: "ALICE", want: []string{"1"}},
		{name: "name lower case", query: "carol", want: []string{"3"}},
		{name: "phone fragment", query: "555-01", want: []string{"1", "2"}},
		{name: "email domain mixed case", query: "Example.Com", want: []string{"1", "3"}},
		{name: "address is not searched", query: "street", want: []string{}},
		{name: "spans name and phone", query: "bob555", want: []string{"2"}},
		{name: "no match", query: "zzz", want: []string{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(agenda.Filter(contacts, tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Filter_Does_Not_Modify_Input(t *testing.T) {
	t.Parallel()

	contacts := []agenda.Contact{
		{ID: "1", Fields: agenda.Fields{Name: "A"}},
		{ID: "2", Fields: agenda.Fields{Name: "B"}},
	}

	got := agenda.Filter(contacts, "")
	got[0].Name = "changed"

	if contacts[0].Name != "A" {
		t.Fatalf("input modified: %q", contacts[0].Name)
	}
}
