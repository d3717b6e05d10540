package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/agenda/internal/cli"
)

// answers joins one answer per prompt.
func answers(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func Test_Form_Adds_Contact(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	// name, address, email, phone, picture, birthdate, sex, action
	stdout, stderr, exitCode := c.RunWithInput(answers("Alice", "", "", "555", "", "", "", "s"), "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", exitCode, want, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if got, want := lines[0], "New contact"; got != want {
		t.Errorf("first line=%q, want=%q", got, want)
	}

	id, ok := strings.CutPrefix(lines[len(lines)-1], "saved ")
	if !ok {
		t.Fatalf("missing saved line in %q", stdout)
	}

	show := c.MustRun("show", id)
	cli.AssertContains(t, show, "name: Alice")
	cli.AssertContains(t, show, "phone: 555")

	cli.AssertContains(t, stderr, "name: ")
	cli.AssertContains(t, stderr, "[s]ave or [c]ancel?")
	cli.AssertNotContains(t, stderr, "[d]elete")
}

func Test_Form_Edit_Keeps_Blank_And_Clears_Dash(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, exitCode := c.RunWithInput(answers("", "", "-", "", "", "", "", "s"), "form", "1")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", exitCode, want, stderr)
	}

	cli.AssertContains(t, stdout, "Editing contact 1")
	cli.AssertContains(t, stdout, "saved 1")

	// Current values are offered in brackets.
	cli.AssertContains(t, stderr, "name [John Doe]: ")

	show := c.MustRun("show", "1")
	cli.AssertContains(t, show, "name: John Doe")
	cli.AssertContains(t, show, "email: \n")
	cli.AssertContains(t, show, "phone: +1 555 1234")
}

func Test_Form_Delete_Asks_For_Confirmation(t *testing.T) {
	t.Parallel()

	blank := []string{"", "", "", "", "", "", ""}

	for _, tt := range []struct {
		name       string
		tail       []string
		wantStdout string
		wantLs     string
	}{
		{name: "confirmed", tail: []string{"d", "y"}, wantStdout: "deleted 1", wantLs: "no contacts"},
		{name: "declined then cancelled", tail: []string{"d", "n", "c"}, wantStdout: "cancelled", wantLs: "John Doe"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)

			stdout, stderr, exitCode := c.RunWithInput(answers(append(blank, tt.tail...)...), "form", "1")

			if got, want := exitCode, 0; got != want {
				t.Fatalf("exitCode=%d, want=%d\nstderr: %s", exitCode, want, stderr)
			}

			cli.AssertContains(t, stdout, tt.wantStdout)
			cli.AssertContains(t, stderr, "Delete this contact? [y/N]")
			cli.AssertContains(t, c.MustRun("ls"), tt.wantLs)
		})
	}
}

func Test_Form_Add_Mode_Ignores_Delete(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, _, exitCode := c.RunWithInput(answers("Temp", "", "", "", "", "", "", "d", "x", "c"), "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "cancelled")
	cli.AssertNotContains(t, c.MustRun("ls"), "Temp")
}

func Test_Form_End_Of_Input_Cancels(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("ls")

	before := c.ReadStored()

	stdout, _, exitCode := c.RunWithInput("Bob\n", "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "cancelled")

	if got := c.ReadStored(); got != before {
		t.Errorf("stored document changed:\n%s", got)
	}
}

func Test_Form_Picture_Retries_Until_File_Loads(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("face.png", pngHeader)

	_, stderr, exitCode := c.RunWithInput(answers("", "", "", "", "missing.png", "face.png", "", "", "s"), "form", "1")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", exitCode, want, stderr)
	}

	cli.AssertContains(t, stderr, "error: read picture")
	cli.AssertContains(t, c.MustRun("show", "1"), "picture: image/png")

	// "-" clears it again.
	c.RunWithInput(answers("", "", "", "", "-", "", "", "s"), "form", "1")
	cli.AssertContains(t, c.MustRun("show", "1"), "picture: (none)")
}

func Test_Form_Unknown_ID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("form", "ghost")

	cli.AssertContains(t, stderr, "contact not found: ghost")
}
