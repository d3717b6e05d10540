package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <id>",
		Short: "Delete a contact",
		Long:  "Delete a contact. Deleting an unknown ID changes nothing.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execRm(ctx, io, a, args)
		},
	}
}

func execRm(ctx context.Context, io *IO, a *app, args []string) error {
	if len(args) == 0 {
		return agenda.ErrIDRequired
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	removed, err := repo.Delete(args[0])
	if err != nil {
		return err
	}

	if !removed {
		io.Println("no contact with id", args[0]+", nothing deleted")

		return nil
	}

	io.Println("deleted", args[0])

	return nil
}
