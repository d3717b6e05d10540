package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show contact details",
		Long:  "Display every field of a contact. The picture is summarized by type and size.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execShow(ctx, io, a, args)
		},
	}
}

func execShow(ctx context.Context, io *IO, a *app, args []string) error {
	if len(args) == 0 {
		return agenda.ErrIDRequired
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	c, ok := repo.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", agenda.ErrContactNotFound, args[0])
	}

	io.Printf("id: %s\n", c.ID)

	for _, field := range agenda.AllFields {
		value := c.Get(field)
		if field == agenda.FieldPicture {
			value = describePicture(value)
		}

		io.Printf("%s: %s\n", field, value)
	}

	return nil
}
