package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fields := addFieldFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "add [flags]",
		Short: "Add a contact",
		Long:  "Create a contact from the given field flags and print its ID. Unset fields are empty.",
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execAdd(ctx, io, a, fields)
		},
	}
}

func execAdd(ctx context.Context, io *IO, a *app, fields *fieldFlags) error {
	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	form := agenda.NewAddForm(repo)

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
