package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

var errNegativeLimit = errors.New("--limit must not be negative")

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	limit := fs.IntP("limit", "n", 0, "Show at most `N` contacts (0 shows all)")

	return &Command{
		Flags: fs,
		Usage: "ls [query] [flags]",
		Short: "List contacts",
		Long: `List contacts in document order, one per line:

  <id>  <name>  <phone>  <email>

An optional query keeps only contacts whose name, phone or email contain it,
ignoring case.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execLs(ctx, io, a, strings.Join(args, " "), *limit)
		},
	}
}

func execLs(ctx context.Context, io *IO, a *app, query string, limit int) error {
	if limit < 0 {
		return errNegativeLimit
	}

	repo, err := a.repository(ctx, io)
	if err != nil {
		return err
	}

	matches := repo.Search(query)

	if len(matches) == 0 {
		if query == "" {
			io.Println("no contacts")
		} else {
			io.Printf("no contacts match %q\n", query)
		}

		return nil
	}

	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, c := range shown {
		io.Println(formatListLine(c))
	}

	if hidden := len(matches) - len(shown); hidden > 0 {
		io.Printf("... %d more (use --limit to show more)\n", hidden)
	}

	return nil
}

func formatListLine(c agenda.Contact) string {
	return strings.Join([]string{c.ID, c.Name, c.Phone, c.Email}, "  ")
}
