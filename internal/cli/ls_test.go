package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/agenda/internal/cli"
)

const defaultLine = "1  John Doe  +1 555 1234  john@example.com"

func Test_Ls_Seeds_Default_Contact_On_First_Run(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("ls"), defaultLine; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, c.ReadStored(), `<contact id="1">`)
}

func Test_Ls_Filters_By_Query(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	aliceID := c.MustRun("add", "--name", "Alice", "--phone", "555-0100", "--email", "alice@example.com")
	bobID := c.MustRun("add", "--name", "Bob", "--phone", "555-0199", "--email", "bob@work.org")

	for _, tt := range []struct {
		query   string
		want    []string
		notWant []string
	}{
		{query: "ALICE", want: []string{aliceID}, notWant: []string{bobID + "  ", "John Doe"}},
		{query: "555-01", want: []string{aliceID, bobID}, notWant: []string{"John Doe"}},
		{query: "example.com", want: []string{aliceID, "John Doe"}, notWant: []string{"Bob"}},
	} {
		t.Run(tt.query, func(t *testing.T) {
			stdout := c.MustRun("ls", tt.query)

			for _, w := range tt.want {
				cli.AssertContains(t, stdout, w)
			}

			for _, nw := range tt.notWant {
				cli.AssertNotContains(t, stdout, nw)
			}
		})
	}
}

func Test_Ls_Keeps_Document_Order(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteStored(`<agenda><contact id="b"><name>B</name></contact><contact id="a"><name>A</name></contact></agenda>`)

	lines := strings.Split(c.MustRun("ls"), "\n")

	if got, want := len(lines), 2; got != want {
		t.Fatalf("lines=%d, want=%d\n%v", got, want, lines)
	}

	if !strings.HasPrefix(lines[0], "b  B") || !strings.HasPrefix(lines[1], "a  A") {
		t.Errorf("unexpected order: %q", lines)
	}
}

func Test_Ls_Empty_States(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("ls", "zzz"), `no contacts match "zzz"`; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	c.WriteStored(`<agenda></agenda>`)

	if got, want := c.MustRun("ls"), "no contacts"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Ls_Limit(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("add", "--name", "Second")
	c.MustRun("add", "--name", "Third")

	stdout := c.MustRun("ls", "--limit", "1")

	cli.AssertContains(t, stdout, defaultLine)
	cli.AssertNotContains(t, stdout, "Second")
	cli.AssertContains(t, stdout, "... 2 more")

	stderr := c.MustFail("ls", "--limit=-1")
	cli.AssertContains(t, stderr, "--limit must not be negative")
}

func Test_Ls_Recovers_From_Corrupt_Document(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteStored("<not xml")

	stdout, stderr, exitCode := c.Run("ls")

	// The warning makes the run exit 1 even though output was produced.
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, defaultLine)
	cli.AssertContains(t, stderr, "warning: saved agenda was unreadable")
	cli.AssertContains(t, stderr, "saved agenda is unreadable, loading default")

	backup, err := os.ReadFile(filepath.Join(c.DataDir(), "agenda_xml_v1.corrupt.xml"))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}

	if got, want := string(backup), "<not xml"; got != want {
		t.Errorf("backup=%q, want=%q", got, want)
	}

	// The default was persisted, so the next run is clean.
	if got, want := c.MustRun("ls"), defaultLine; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}
