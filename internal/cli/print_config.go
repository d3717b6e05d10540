package cli

import (
	"context"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/store"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *agenda.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg *agenda.Config) error {
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("data_dir=" + cfg.DataDirAbs)
	io.Println("storage=" + cfg.Storage)
	io.Println("storage_key=" + cfg.StorageKey)

	switch cfg.Storage {
	case store.BackendFile:
		io.Println("location=" + filepath.Join(cfg.DataDirAbs, cfg.StorageKey+store.FileExt))
	case store.BackendSQLite:
		io.Println("location=" + filepath.Join(cfg.DataDirAbs, store.SQLiteFileName))
	}

	io.Println("id_strategy=" + cfg.IDStrategy)
	io.Println("log_level=" + cfg.LogLevel)
	io.Println("export_name=" + cfg.ExportName)
	io.Println("max_picture_size=" + cfg.MaxPictureSize)

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
