package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/fs"
	"github.com/calvinalkan/agenda/internal/store"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
// A signal on sigCh cancels the command's context; sigCh may be nil.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printGlobalFlags(errOut)

		return 1
	}

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out)

		return 0
	}

	cfg, err := agenda.LoadConfig(agenda.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		DataDirOverride: flags.dataDir,
		StorageOverride: flags.storage,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	a := &app{
		cfg:    cfg,
		log:    newLogger(cfg.LogLevel, errOut),
		fs:     fs.NewReal(),
		in:     in,
		out:    out,
		errOut: errOut,
	}
	defer a.close()

	name := flags.remaining[0]

	cmd, ok := a.commands()[name]
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut)

		return 1
	}

	return cmd.Run(ctx, NewIO(out, errOut), flags.remaining[1:])
}

// app carries what every command needs. The store and repository are opened
// on first use so commands like print-config never touch storage.
type app struct {
	cfg    agenda.Config
	log    hclog.Logger
	fs     fs.FS
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	store store.Store
	repo  *agenda.Repository
}

func (a *app) commands() map[string]*Command {
	cmds := []*Command{
		LsCmd(a),
		ShowCmd(a),
		AddCmd(a),
		EditCmd(a),
		RmCmd(a),
		FormCmd(a),
		ImportCmd(a),
		ExportCmd(a),
		PrintConfigCmd(&a.cfg),
	}

	byName := make(map[string]*Command, len(cmds))
	for _, c := range cmds {
		byName[c.Name()] = c
	}

	return byName
}

// repository opens the configured store and loads the address book.
// A recovered corrupt document is reported as a warning on o.
func (a *app) repository(ctx context.Context, o *IO) (*agenda.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	st, err := store.Open(ctx, store.Options{Backend: a.cfg.Storage, Dir: a.cfg.DataDirAbs, FS: a.fs})
	if err != nil {
		return nil, err
	}

	ids, err := agenda.NewIDGenerator(a.cfg.IDStrategy)
	if err != nil {
		_ = st.Close()

		return nil, err
	}

	repo, err := agenda.Open(st,
		agenda.WithKey(a.cfg.StorageKey),
		agenda.WithIDGenerator(ids),
		agenda.WithLogger(a.log.Named("repository")),
	)
	if err != nil {
		_ = st.Close()

		return nil, err
	}

	if repo.Recovered() {
		o.Warn("saved agenda was unreadable and has been reset",
			"the previous contents were kept under "+repo.Key()+".corrupt in "+a.cfg.DataDirAbs)
	}

	a.store = st
	a.repo = repo

	return repo, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}

	err := a.store.Close()
	if err != nil {
		a.log.Warn("closing store failed", "error", err)
	}
}

func newLogger(level string, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "agenda",
		Level:  hclog.LevelFromString(level),
		Output: w,
	})
}

type globalFlags struct {
	workDir    string
	configPath string
	dataDir    string
	storage    string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// valueFlag matches "--name value", "--name=value" and, when short is set,
// "-x value" and "-xvalue".
func valueFlag(args []string, idx int, long, short string, dst *string) (int, error) {
	arg := args[idx]

	if arg == long || (short != "" && arg == short) {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", agenda.ErrFlagRequiresArg, arg)
		}

		*dst = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, long+"="); ok {
		*dst = after

		return consumedOne, nil
	}

	if short != "" && len(arg) > len(short) {
		if after, ok := strings.CutPrefix(arg, short); ok {
			*dst = after

			return consumedOne, nil
		}
	}

	return consumedNone, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	for _, f := range []struct {
		long, short string
		dst         *string
	}{
		{"--cwd", "-C", &flags.workDir},
		{"--config", "-c", &flags.configPath},
		{"--data-dir", "", &flags.dataDir},
		{"--storage", "", &flags.storage},
	} {
		consumed, err := valueFlag(args, idx, f.long, f.short, f.dst)
		if err != nil || consumed > 0 {
			return consumed, err
		}
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", agenda.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printGlobalFlags(w io.Writer) {
	fprintln(w, `Global flags:
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified config file (.json or .toml)
      --data-dir <dir>   Store the address book in <dir>
      --storage <name>   Storage backend: file, sqlite or memory
  -h, --help             Show help`)
}

func printUsage(w io.Writer) {
	fprintln(w, "agenda - contact address book")
	fprintln(w)
	fprintln(w, "Usage: agenda [global flags] <command> [args]")
	fprintln(w)
	printGlobalFlags(w)
	fprintln(w)
	fprintln(w, "Commands:")

	// Usage lines don't depend on configuration.
	a := &app{}
	for _, name := range commandOrder {
		fprintln(w, a.commands()[name].HelpLine())
	}
}

// commandOrder is the order commands appear in the usage listing.
var commandOrder = []string{"ls", "show", "add", "edit", "rm", "form", "import", "export", "print-config"}
