package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

var errNoChanges = errors.New("no field flags given")

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fields := addFieldFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Change fields of a contact",
		Long: `Change the fields named by flags and keep the others.
Pass an empty value (--email "") to clear a field.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execEdit(ctx, io, a, args, fields)
		},
	}
}

func execEdit(ctx context.Context, io *IO, a *app, args []string, fields *fieldFlags) error {
	if len(args) == 0 {
		return agenda.ErrIDRequired
	}

	if !fields.changed() {
		return errNoChanges
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	form, err := agenda.OpenEditForm(repo, args[0])
	if err != nil {
		return err
	}

	err = fields.apply(a, form)
	if err != nil {
		return err
	}

	c, err := form.Submit()
	if err != nil {
		return err
	}

	io.Println(c.ID)

	return nil
}
