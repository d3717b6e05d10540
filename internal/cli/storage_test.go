package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/agenda/internal/cli"
)

func Test_SQLite_Storage_Persists_Between_Runs(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.MustRun("--storage", "sqlite", "add", "--name", "Lite")

	cli.AssertContains(t, c.MustRun("--storage", "sqlite", "ls"), id+"  Lite")

	_, err := os.Stat(filepath.Join(c.DataDir(), "agenda.sqlite"))
	if err != nil {
		t.Errorf("sqlite file missing: %v", err)
	}

	// The file backend is a separate store.
	cli.AssertNotContains(t, c.MustRun("ls"), "Lite")
}

func Test_Memory_Storage_Does_Not_Persist(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("--storage", "memory", "add", "--name", "Ephemeral")

	cli.AssertNotContains(t, c.MustRun("--storage", "memory", "ls"), "Ephemeral")

	_, err := os.Stat(c.DataDir())
	if !os.IsNotExist(err) {
		t.Errorf("memory storage touched the data dir, stat err=%v", err)
	}
}

func Test_Custom_Storage_Key_And_Data_Dir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".agenda.json", `{"storage_key": "work", "data_dir": "books"}`)

	c.MustRun("add", "--name", "Colleague")

	data, err := os.ReadFile(filepath.Join(c.Dir, "books", "work.xml"))
	if err != nil {
		t.Fatalf("read stored document: %v", err)
	}

	cli.AssertContains(t, string(data), "<name>Colleague</name>")
}

func Test_UUID_ID_Strategy(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".agenda.json", `{"id_strategy": "uuid"}`)

	id := c.MustRun("add", "--name", "U")

	if got, want := len(id), 36; got != want {
		t.Errorf("id=%q has length %d, want %d", id, got, want)
	}
}
