package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/cli"
)

// FuzzCLI_DoesNotCrash_Or_Leave_Invalid_State_When_Invoked_With_Arbitrary_Input
// tests that the CLI never panics and always leaves a readable document.
func FuzzCLI_DoesNotCrash_Or_Leave_Invalid_State_When_Invoked_With_Arbitrary_Input(f *testing.F) {
	// === Empty/whitespace/help ===
	f.Add("")
	f.Add(" ")
	f.Add("--help")
	f.Add("-h")

	// === ls / show ===
	f.Add("ls")
	f.Add("ls john")
	f.Add("ls -n 0")
	f.Add("ls --limit abc")
	f.Add("show 1")
	f.Add("show")
	f.Add("show nope")

	// === add / edit / rm ===
	f.Add("add --name Jane --phone 555")
	f.Add("add --name <&>")
	f.Add("add --picture-file missing.png")
	f.Add("add --picture x --clear-picture")
	f.Add("edit 1 --email a@b")
	f.Add("edit 1")
	f.Add("edit nope --name x")
	f.Add("rm 1")
	f.Add("rm nope")
	f.Add("rm")

	// === form / transfer ===
	f.Add("form")
	f.Add("form 1")
	f.Add("export")
	f.Add("export out.xml")
	f.Add("export -")
	f.Add("import")
	f.Add("import contacts.xml")
	f.Add("import -")
	f.Add("import - --force")

	// === global flags / config ===
	f.Add("--storage memory ls")
	f.Add("--storage sqlite add --name x")
	f.Add("--storage nope ls")
	f.Add("-c missing.json ls")
	f.Add("print-config")
	f.Add("unknown")
	f.Add("--bogus ls")

	f.Fuzz(func(t *testing.T, input string) {
		// Keep every path the CLI can touch inside the temp dir.
		for _, escape := range []string{"/", "\\", "..", "~", "-C", "cwd", "data-dir"} {
			if strings.Contains(input, escape) {
				t.Skip("input may leave the sandbox")
			}
		}

		c := cli.NewCLI(t)
		args := strings.Fields(input)

		c.Run(args...)

		checkInvariants(t, c)
	})
}

// checkInvariants verifies the data directory holds a readable document and
// nothing else unexpected.
func checkInvariants(t *testing.T, c *cli.CLI) {
	t.Helper()

	_, statErr := os.Stat(c.DataDir())
	if os.IsNotExist(statErr) {
		return
	}

	data, err := os.ReadFile(c.StoredPath())
	if err == nil {
		_, err = agenda.Parse(data)
		if err != nil {
			t.Errorf("stored document does not parse: %v", err)
		}
	} else if !os.IsNotExist(err) {
		t.Errorf("unreadable stored document: %v", err)
	}

	entries, err := os.ReadDir(c.DataDir())
	if err != nil {
		t.Errorf("failed to read data dir: %v", err)

		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.Contains(name, ".tmp") {
			t.Errorf("unexpected entry in data dir: %s", filepath.Join(c.DataDir(), name))
		}
	}
}
