package cli

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"
)

const (
	exportPerms = 0o644
	dirPerms    = 0o755
)

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("export", flag.ContinueOnError),
		Usage: "export [file|-]",
		Short: "Write the address book as XML",
		Long: `Write the address book as an XML file ("-" writes to stdout).
Without an argument the file is named after export_name (default contacts.xml).`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execExport(ctx, io, a, args)
		},
	}
}

func execExport(ctx context.Context, io *IO, a *app, args []string) error {
	target := a.cfg.ExportName
	if len(args) > 0 {
		target = args[0]
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	data, err := repo.Export()
	if err != nil {
		return err
	}

	if target == "-" {
		_, err = io.Write(data)

		return err
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.EffectiveCwd, path)
	}

	err = a.fs.MkdirAll(filepath.Dir(path), dirPerms)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	err = a.fs.WriteFileAtomic(path, data, exportPerms)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	io.Printf("exported %d contacts to %s\n", len(repo.All()), path)

	return nil
}
