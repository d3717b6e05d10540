package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// FormCmd returns the interactive form command.
func FormCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("form", flag.ContinueOnError),
		Usage: "form [id]",
		Short: "Add or edit a contact interactively",
		Long: `Walk through every field of a contact, then save, cancel or delete.

Without an ID a new contact is created. For each field, a blank answer keeps
the current value and "-" clears it. On a terminal the current value is
pre-filled for editing. The picture is read from an image file path.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execForm(ctx, io, a, args)
		},
	}
}

func execForm(ctx context.Context, io *IO, a *app, args []string) error {
	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	var form *agenda.Form

	if len(args) > 0 {
		form, err = agenda.OpenEditForm(repo, args[0])
		if err != nil {
			return err
		}

		io.Println("Editing contact", form.ID())
	} else {
		form = agenda.NewAddForm(repo)

		io.Println("New contact")
	}

	p := newPrompter(a.in, a.errOut)
	defer func() { _ = p.Close() }()

	err = fillForm(ctx, a, p, form)
	if err == nil {
		err = finishForm(p, form)
	}

	if errors.Is(err, errPromptAborted) || errors.Is(err, context.Canceled) {
		_ = form.Cancel()
		io.Println("cancelled")

		return nil
	}

	if err != nil {
		return err
	}

	switch form.State() {
	case agenda.StateSubmitted:
		io.Println("saved", form.ID())
	case agenda.StateDeleted:
		io.Println("deleted", form.ID())
	default:
		io.Println("cancelled")
	}

	return nil
}

func fillForm(ctx context.Context, a *app, p Prompter, form *agenda.Form) error {
	for _, field := range agenda.AllFields {
		err := ctx.Err()
		if err != nil {
			return err
		}

		if field == agenda.FieldPicture {
			err = askPicture(a, p, form)
		} else {
			var value string

			value, err = p.Edit(field.String(), form.Get(field))
			if err == nil {
				err = form.Set(field, value)
			}
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// askPicture asks for an image file until one loads or the answer is blank
// (keep) or "-" (clear).
func askPicture(a *app, p Prompter, form *agenda.Form) error {
	question := "picture file (" + describePicture(form.Get(agenda.FieldPicture)) + ", blank keeps, - clears):"

	for {
		answer, err := p.Ask(question)
		if err != nil {
			return err
		}

		switch answer {
		case "":
			return nil
		case clearValue:
			return form.ClearPicture()
		}

		payload, err := a.loadPicture(answer)
		if err != nil {
			fprintln(a.errOut, "error:", err)

			continue
		}

		return form.SetPicture(payload)
	}
}

// finishForm asks for the closing action and applies it.
func finishForm(p Prompter, form *agenda.Form) error {
	question := "[s]ave or [c]ancel?"
	if form.Mode() == agenda.ModeEdit {
		question = "[s]ave, [c]ancel or [d]elete?"
	}

	for {
		answer, err := p.Ask(question)
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "s", "save":
			_, err = form.Submit()

			return err

		case "c", "cancel":
			return form.Cancel()

		case "d", "delete":
			if form.Mode() != agenda.ModeEdit {
				continue
			}

			ok, err := confirm(p, "Delete this contact?")
			if err != nil {
				return err
			}

			if !ok {
				continue
			}

			_, err = form.Delete()

			return err
		}
	}
}
