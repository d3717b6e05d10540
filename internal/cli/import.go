package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

var errFileRequired = errors.New("file argument is required (use - for stdin)")

// foreignRootQuestion asks before importing a document with another root element.
const foreignRootQuestion = "Root element is not <" + agenda.RootElement + ">. Still import?"

// ImportCmd returns the import command.
func ImportCmd(a *app) *Command {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	force := fs.BoolP("force", "f", false, "Import even if the root element is not <agenda>, without asking")

	return &Command{
		Flags: fs,
		Usage: "import <file|-> [flags]",
		Short: "Replace the address book with an XML file",
		Long: `Replace every contact with the ones in an XML file ("-" reads stdin).

Unreadable files are rejected and change nothing. A document whose root
element is not <agenda> is only imported after confirmation, or with --force.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execImport(ctx, io, a, args, *force)
		},
	}
}

func execImport(ctx context.Context, io *IO, a *app, args []string, force bool) error {
	if len(args) == 0 {
		return errFileRequired
	}

	data, err := a.readInput(args[0])
	if err != nil {
		return err
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	n, err := repo.Import(data, force)
	if errors.Is(err, agenda.ErrUnexpectedRoot) {
		var ok bool

		ok, err = a.confirmForeignRoot(args[0], err)
		if err != nil {
			return err
		}

		if !ok {
			io.Println("import cancelled")

			return nil
		}

		n, err = repo.Import(data, true)
	}

	if err != nil {
		return err
	}

	io.Printf("imported %d contacts\n", n)

	return nil
}

// confirmForeignRoot asks whether to import a document with an unexpected
// root element. When stdin carries the document itself or has no answer,
// the import is refused with cause and a hint.
func (a *app) confirmForeignRoot(source string, cause error) (bool, error) {
	if source == "-" {
		return false, fmt.Errorf("%w (use --force to import anyway)", cause)
	}

	p := newPrompter(a.in, a.errOut)
	defer func() { _ = p.Close() }()

	ok, err := confirm(p, foreignRootQuestion)
	if errors.Is(err, errPromptAborted) {
		return false, fmt.Errorf("%w (use --force to import anyway)", cause)
	}

	return ok, err
}

// readInput reads a file relative to the working directory, or stdin for "-".
func (a *app) readInput(name string) ([]byte, error) {
	if name == "-" {
		if a.in == nil {
			return nil, nil
		}

		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.EffectiveCwd, path)
	}

	data, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}
