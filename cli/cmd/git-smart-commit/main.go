package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"smartcommit/cli/internal/apply"
	"smartcommit/cli/internal/changes"
	"smartcommit/cli/internal/config"
	"smartcommit/cli/internal/debuglog"
	"smartcommit/cli/internal/erruser"
	"smartcommit/cli/internal/git"
	"smartcommit/cli/internal/ollama"
	"smartcommit/cli/internal/run"
	"smartcommit/cli/internal/runner"
	"smartcommit/cli/internal/ui"
	"smartcommit/cli/internal/version"
)

// errExit is an error that carries an exit code for the CLI. Use errors.As to detect it.
type errExit int

func (e errExit) Error() string {
	return "exit " + strconv.Itoa(int(e))
}

// Process-level hooks. Tests replace them to run the CLI against temp repos
// and captured output.
var (
	stdin            io.Reader = os.Stdin
	stdout           io.Writer = os.Stdout
	stderr           io.Writer = os.Stderr
	environ                    = os.Environ
	workDir                    = os.Getwd
	globalConfigPath           = ""
)

func main() {
	os.Exit(Run())
}

// Run is the entry point for the CLI. It is exported for testing.
func Run() int {
	return runCLI(os.Args[1:])
}

func runCLI(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr errExit
		if errors.As(err, &exitErr) {
			return int(exitErr)
		}
		printErr(err)
		return 1
	}
	return 0
}

// printErr writes the user message, then the wrapped cause and any hint.
func printErr(err error) {
	fmt.Fprintln(stderr, err)
	if u := errors.Unwrap(err); u != nil && u.Error() != err.Error() {
		fmt.Fprintf(stderr, "Details: %v\n", u)
	}
	if h := erruser.HintOf(err); h != "" {
		fmt.Fprintf(stderr, "Hint: %s\n", h)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "Generate Git commit messages with a local Ollama model",
		Long: "Collects the staged changes of the current repository, asks a local model for one or\n" +
			"more commit messages, lets you pick or refine one, and optionally commits it.",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE:    runRoot,
	}
	f := cmd.Flags()
	f.BoolP("generate", "g", false, "Generate a commit message and print it")
	f.BoolP("commit", "c", false, "Generate a commit message and commit with it")
	f.StringP("model", "m", "", "Ollama model to use")
	f.BoolP("all", "a", false, "Stage all changes before generating")
	f.BoolP("debug", "d", false, "Write a debug log and mirror it to stderr")
	f.Bool("view-log", false, "Print the debug log")
	f.Bool("clear-log", false, "Delete the debug log")
	f.StringP("lang", "l", "", "Prompt language: en, zh, english, chinese, or auto")
	f.IntP("options", "n", 0, "Number of candidate messages (1-5)")
	f.Bool("non-interactive", false, "Use the first candidate without prompting")
	f.String("backend", "", "Model backend: cli (ollama run) or http (Ollama API)")
	return cmd
}

// overridesFromFlags returns Overrides for every flag the user set.
func overridesFromFlags(cmd *cobra.Command) *config.Overrides {
	f := cmd.Flags()
	o := &config.Overrides{}
	set := false
	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		set = true
		return &v
	}
	flag := func(name string) *bool {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetBool(name)
		set = true
		return &v
	}
	o.Model = str("model")
	o.Language = str("lang")
	o.Backend = str("backend")
	o.Debug = flag("debug")
	o.NonInteractive = flag("non-interactive")
	if f.Changed("options") {
		v, _ := f.GetInt("options")
		o.Options = &v
		set = true
	}
	if !set {
		return nil
	}
	return o
}

// loadConfig resolves the repository root when there is one and loads config.
// A missing repository is not an error here; the flow reports it later.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, string, error) {
	cwd, err := workDir()
	if err != nil {
		return nil, "", erruser.New("Could not determine current directory.", err)
	}
	repoRoot := ""
	if r, e := git.RepoRoot(cwd); e == nil {
		repoRoot = r
	}
	cfg, err := config.Load(ctx, config.LoadOptions{
		RepoRoot:         repoRoot,
		GlobalConfigPath: globalConfigPath,
		Env:              environ(),
		Overrides:        overridesFromFlags(cmd),
	})
	if err != nil {
		return nil, "", err
	}
	return cfg, cwd, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f := cmd.Flags()
	generate, _ := f.GetBool("generate")
	commit, _ := f.GetBool("commit")
	viewLog, _ := f.GetBool("view-log")
	clearLog, _ := f.GetBool("clear-log")
	if !generate && !commit && !viewLog && !clearLog {
		return cmd.Help()
	}

	cfg, cwd, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	if viewLog || clearLog {
		return runLogCommand(cfg, viewLog, clearLog)
	}

	log := openLog(cfg)
	defer log.Close()

	stageAll, _ := f.GetBool("all")
	mode := run.ModeGenerate
	if commit {
		mode = run.ModeCommit
	}
	console := ui.NewConsole(stdin, ui.NewPrinter(stdout))
	_, err = run.Generate(ctx, run.Options{
		Dir:         cwd,
		Mode:        mode,
		StageAll:    stageAll,
		Config:      cfg,
		Language:    cfg.EffectiveLanguage(environ()),
		Interactive: !cfg.NonInteractive,
		Console:     console,
		Log:         log,
	})
	if err == nil {
		return nil
	}
	if isCleanExit(err) {
		log.Infof("exit: %v", err)
		fmt.Fprintln(stderr, err)
		if h := erruser.HintOf(err); h != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", h)
		}
		return nil
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "Interrupted.")
		return errExit(130)
	}
	log.Errorf("%v", err)
	return err
}

// isCleanExit reports conditions that end the run without committing but are
// not failures: no repository, nothing to commit, or no model runner.
func isCleanExit(err error) bool {
	if errors.Is(err, apply.ErrCommitFailed) {
		return false
	}
	return errors.Is(err, changes.ErrNotARepository) ||
		errors.Is(err, changes.ErrNoChanges) ||
		errors.Is(err, changes.ErrNoStagedChanges) ||
		errors.Is(err, runner.ErrModelUnavailable)
}

// openLog opens the debug log when cfg.Debug is set. Failing to open it is a
// warning; the run continues without a log.
func openLog(cfg *config.Config) *debuglog.Logger {
	if !cfg.Debug {
		return nil
	}
	path, err := cfg.EffectiveLogFile()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
		return nil
	}
	log, err := debuglog.Open(debuglog.Options{Path: path, Console: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
		return nil
	}
	log.Infof("%s, log file %s", version.Full(), path)
	return log
}

func runLogCommand(cfg *config.Config, view, clear bool) error {
	path, err := cfg.EffectiveLogFile()
	if err != nil {
		return err
	}
	if view {
		err := debuglog.View(path, stdout)
		if errors.Is(err, debuglog.ErrNoLog) {
			fmt.Fprintf(stderr, "No debug log at %s.\n", path)
		} else if err != nil {
			return erruser.New("Could not read the debug log.", err)
		}
	}
	if clear {
		removed, err := debuglog.Clear(path)
		if err != nil {
			return erruser.New("Could not delete the debug log.", err)
		}
		if removed {
			fmt.Fprintln(stdout, "Debug log cleared.")
		} else {
			fmt.Fprintln(stdout, "No debug log to clear.")
		}
	}
	return nil
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Verify environment (Git, Ollama, model)",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath("git"); err != nil {
		fmt.Fprintln(stderr, "git not found on PATH.")
		return errExit(1)
	}
	fmt.Fprintln(stdout, "Git OK")

	if err := runner.Available(cfg.OllamaBin); err != nil {
		if cfg.Backend == config.BackendCLI {
			fmt.Fprintf(stderr, "%s not found on PATH. Install Ollama or set backend = \"http\".\n", cfg.OllamaBin)
			return errExit(1)
		}
		fmt.Fprintf(stdout, "%s not on PATH (not needed for the http backend)\n", cfg.OllamaBin)
	} else {
		fmt.Fprintf(stdout, "Runner: %s\n", cfg.OllamaBin)
	}

	client := ollama.NewClient(cfg.OllamaBaseURL, nil)
	result, err := client.Check(cmd.Context(), cfg.Model)
	if err != nil {
		if errors.Is(err, ollama.ErrUnreachable) {
			fmt.Fprintf(stderr, "Ollama unreachable at %s. Is the server running? For local: ollama serve.\n", cfg.OllamaBaseURL)
			fmt.Fprintf(stderr, "Details: %v\n", err)
			return errExit(2)
		}
		if errors.Is(err, ollama.ErrBadRequest) {
			fmt.Fprintf(stderr, "Ollama bad request at %s. %v\n", cfg.OllamaBaseURL, err)
			return errExit(2)
		}
		fmt.Fprintln(stderr, err.Error())
		return errExit(1)
	}
	if !result.ModelPresent {
		fmt.Fprintf(stderr, "Model %q not found. Pull it with: ollama pull %s\n", cfg.Model, cfg.Model)
		return errExit(1)
	}
	fmt.Fprintln(stdout, "Ollama OK")
	fmt.Fprintf(stdout, "Model: %s\n", cfg.Model)
	return nil
}
