// Package run implements the generate and commit flows end to end: check
// the working tree (offering to stage), collect the change set, build the
// prompt, call the model, let the user pick or refine a candidate, and
// optionally commit. Used by the CLI and by tests.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"smartcommit/cli/internal/apply"
	"smartcommit/cli/internal/changes"
	"smartcommit/cli/internal/commitmsg"
	"smartcommit/cli/internal/config"
	"smartcommit/cli/internal/debuglog"
	"smartcommit/cli/internal/erruser"
	"smartcommit/cli/internal/git"
	"smartcommit/cli/internal/lang"
	"smartcommit/cli/internal/ollama"
	"smartcommit/cli/internal/prompt"
	"smartcommit/cli/internal/refine"
	"smartcommit/cli/internal/runner"
	"smartcommit/cli/internal/tokens"
	"smartcommit/cli/internal/ui"
)

// Mode selects whether the flow ends by printing or by committing.
type Mode int

const (
	ModeGenerate Mode = iota
	ModeCommit
)

// Options configures Generate. Config, Console, and Dir are required.
type Options struct {
	Dir      string
	Mode     Mode
	StageAll bool
	Config   *config.Config
	Language lang.Language
	// Interactive enables the auto-stage question, the refinement loop, and
	// the commit confirmation. Without it the first candidate is used as is.
	Interactive bool
	Console     *ui.Console
	// Generator overrides the model backend chosen from Config.
	Generator commitmsg.Generator
	Log       *debuglog.Logger
}

// Outcome is what Generate produced.
type Outcome struct {
	Candidates []string
	Message    string // the selected message; "" when nothing was selected
	Committed  bool
}

// NewGenerator returns the model backend named by cfg.Backend. For the cli
// backend the runner binary must be on PATH.
func NewGenerator(cfg *config.Config) (commitmsg.Generator, error) {
	switch cfg.Backend {
	case config.BackendHTTP:
		client := ollama.NewClient(cfg.OllamaBaseURL, &http.Client{Timeout: cfg.Timeout})
		return &ollama.Generator{
			Client:  client,
			Model:   cfg.Model,
			Options: &ollama.GenerateOptions{Temperature: cfg.Temperature, NumCtx: cfg.ContextLimit},
		}, nil
	default:
		if err := runner.Available(cfg.OllamaBin); err != nil {
			return nil, erruser.WithHint(fmt.Sprintf("%s was not found on PATH.", cfg.OllamaBin),
				"install Ollama from https://github.com/ollama/ollama, or set backend = \"http\"", err)
		}
		return &runner.Process{Bin: cfg.OllamaBin, Model: cfg.Model}, nil
	}
}

// Generate runs the whole flow. It returns errors wrapping
// changes.ErrNotARepository, changes.ErrNoChanges, changes.ErrNoStagedChanges,
// and runner.ErrModelUnavailable for conditions the CLI treats as a clean
// exit; apply.ErrCommitFailed and git failures are fatal. A failed model call
// is not an error: the failure is shown in place of the candidates.
func Generate(ctx context.Context, opts Options) (Outcome, error) {
	if opts.Config == nil || opts.Console == nil {
		return Outcome{}, errors.New("run: config and console are required")
	}
	cfg := opts.Config
	out := opts.Console.Printer()
	log := opts.Log
	log.Section("generate")
	log.Payload("config", cfg)

	gen := opts.Generator
	if gen == nil {
		var err error
		if gen, err = NewGenerator(cfg); err != nil {
			log.Errorf("backend: %v", err)
			return Outcome{}, err
		}
	}

	root, err := changes.Root(opts.Dir)
	if err != nil {
		return Outcome{}, err
	}
	log.Infof("repository root %s", root)

	if err := ensureStaged(opts, root, out, log); err != nil {
		return Outcome{}, err
	}

	warn := func(format string, args ...any) {
		out.Warn("Warning: "+format, args...)
		log.Warnf(format, args...)
	}
	cc, err := changes.Collect(ctx, changes.Options{RepoRoot: root, RecentCount: cfg.RecentCommits, Warn: warn})
	if err != nil {
		return Outcome{}, err
	}
	for _, s := range cc.Submodules {
		out.Warn("Submodule change detected: %s (%s..%s)", s.Path, s.OldRef, s.NewRef)
	}
	out.Info("%d staged file(s), %s of diff.", len(strings.Split(cc.StagedFileStatus, "\n")), ui.Size(len(cc.StagedDiff)))
	log.Payload("change context", cc)

	count := config.ClampOptions(cfg.Options)
	p := prompt.Build(*cc, prompt.Options{Language: opts.Language, OptionCount: count})
	if w := tokens.Check(p, cfg.ContextLimit, cfg.WarnThreshold).Warning(); w != "" {
		out.Warn("Warning: %s", w)
		log.Warnf("%s", w)
	}
	log.Payload("prompt", p)

	out.Info("Generating commit message with %s...", cfg.Model)
	res := ui.Wrap(out.Writer(), "Waiting for the model...", func() commitmsg.Result {
		return commitmsg.Candidates(ctx, gen, p, count, opts.Language)
	})
	log.Payload("model reply", res.Raw)
	log.Payload("candidates", res.Candidates)
	oc := Outcome{Candidates: res.Candidates}
	if res.Err != nil {
		log.Errorf("model: %v", res.Err)
		out.Error("Model call failed.")
		out.Candidates("Option", res.Candidates)
		return oc, ctx.Err()
	}

	if opts.Interactive {
		r, err := refine.Run(ctx, refine.Session{
			Console:      opts.Console,
			Generator:    gen,
			Language:     opts.Language,
			Candidates:   res.Candidates,
			Conversation: refine.NewConversation(p, res.Raw),
			HistoryTurns: cfg.HistoryTurns,
			Log:          log,
		})
		if err != nil {
			return oc, err
		}
		if !r.Confirmed {
			out.Warn("No commit message selected.")
			return oc, nil
		}
		oc.Message = r.Message
	} else {
		oc.Message = res.Candidates[0]
	}

	out.Heading("Commit message:")
	out.Plain(oc.Message)
	log.Payload("selected message", oc.Message)

	if opts.Mode != ModeCommit {
		return oc, nil
	}
	oc.Committed, err = apply.Apply(ctx, opts.Console, root, oc.Message, opts.Interactive)
	if err != nil {
		log.Errorf("commit: %v", err)
		return oc, err
	}
	log.Infof("committed: %t", oc.Committed)
	return oc, nil
}

// ensureStaged makes sure something is staged: with StageAll it stages
// everything up front; otherwise, when the index is empty, it explains what
// is unstaged and (interactively) offers to stage it all.
func ensureStaged(opts Options, root string, out *ui.Printer, log *debuglog.Logger) error {
	pending, err := changes.Check(root)
	if err != nil {
		return err
	}
	log.Payload("pending", pending)
	if opts.StageAll && (pending.Unstaged || pending.SubmoduleModified) {
		out.Info("Staging all changes...")
		return git.StageAll(root)
	}
	if pending.Staged {
		return nil
	}
	if !pending.Any() {
		return erruser.New("No changes detected.", changes.ErrNoChanges)
	}
	if pending.SubmoduleModified {
		out.Warn("Submodule changes detected but not staged.")
		out.Warn("Hint: git add %s", strings.Join(pending.Submodules, " "))
	} else {
		out.Warn("Changes detected but not staged.")
		out.Warn("Hint: git add <path>")
	}
	if !opts.Interactive {
		return erruser.WithHint("No staged changes.", "stage changes first, or rerun with --all", changes.ErrNoStagedChanges)
	}
	ok, err := opts.Console.Confirm("Stage all changes and continue?")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !ok {
		return erruser.New("Nothing staged; exiting.", changes.ErrNoStagedChanges)
	}
	if err := git.StageAll(root); err != nil {
		return err
	}
	out.Success("All changes staged.")
	return nil
}
