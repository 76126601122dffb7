// Package refine is the interactive loop after generation: the user picks a
// candidate, or describes a change in plain language and the model revises
// the message, until they keep a result or quit.
package refine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"smartcommit/cli/internal/commitmsg"
	"smartcommit/cli/internal/debuglog"
	"smartcommit/cli/internal/lang"
	"smartcommit/cli/internal/prompt"
	"smartcommit/cli/internal/ui"
)

// State is a step of the refinement loop.
type State int

const (
	Presenting State = iota
	AwaitingChoice
	AwaitingFreeText
	Invoking
	Confirmed
	Aborted
)

func (s State) String() string {
	switch s {
	case Presenting:
		return "presenting"
	case AwaitingChoice:
		return "awaiting-choice"
	case AwaitingFreeText:
		return "awaiting-free-text"
	case Invoking:
		return "invoking"
	case Confirmed:
		return "confirmed"
	case Aborted:
		return "aborted"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Session is everything one loop needs.
type Session struct {
	Console      *ui.Console
	Generator    commitmsg.Generator
	Language     lang.Language
	Candidates   []string      // the initial candidate set
	Conversation *Conversation // seeded by the caller; created empty when nil
	HistoryTurns int           // defaults to DefaultHistoryTurns
	Log          *debuglog.Logger
}

// Result is the outcome of Run. Message is set only when Confirmed.
type Result struct {
	Message   string
	Confirmed bool
	Refined   bool // Message came from the model rather than the initial candidates
}

type loop struct {
	s         Session
	out       *ui.Printer
	originals []string
	cands     []string
	chosen    string // candidate picked from the menu
	working   string // latest refined message; "" until the first successful refinement
	request   string
	state     State
}

// Run drives the loop until the user confirms a message or aborts. End of
// input aborts. Model errors are reported and the loop returns to the menu
// it came from. The returned error is non-nil only for input failures other
// than EOF and for ctx cancellation.
func Run(ctx context.Context, s Session) (Result, error) {
	if s.Console == nil {
		return Result{}, errors.New("refine: nil console")
	}
	if len(s.Candidates) == 0 {
		return Result{}, errors.New("refine: no candidates")
	}
	if s.Conversation == nil {
		s.Conversation = &Conversation{}
	}
	if s.HistoryTurns <= 0 {
		s.HistoryTurns = DefaultHistoryTurns
	}
	l := &loop{
		s:         s,
		out:       s.Console.Printer(),
		originals: append([]string(nil), s.Candidates...),
		state:     Presenting,
	}
	l.cands = l.originals
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		s.Log.Debugf("refine: state %s", l.state)
		var err error
		switch l.state {
		case Presenting:
			l.present()
		case AwaitingChoice:
			err = l.choose()
		case AwaitingFreeText:
			err = l.readRequest()
		case Invoking:
			l.invoke(ctx)
		case Confirmed:
			return Result{Message: l.message(), Confirmed: true, Refined: l.working != ""}, nil
		case Aborted:
			return Result{}, nil
		}
		if errors.Is(err, io.EOF) {
			l.out.Warn("Input closed; no commit.")
			l.state = Aborted
			continue
		}
		if err != nil {
			return Result{}, err
		}
	}
}

func (l *loop) message() string {
	if l.working != "" {
		return l.working
	}
	return l.chosen
}

func (l *loop) present() {
	if len(l.cands) == 1 {
		l.chosen = l.cands[0]
		l.state = Confirmed
		return
	}
	l.out.Heading("Generated commit messages:")
	l.out.Candidates("Option", l.cands)
	l.state = AwaitingChoice
}

func (l *loop) choose() error {
	if l.working == "" {
		return l.chooseCandidate()
	}
	return l.chooseResult()
}

func (l *loop) chooseCandidate() error {
	n := len(l.cands)
	answer, err := l.s.Console.ReadLine(fmt.Sprintf("Select an option [1-%d], r to refine, q to quit:", n))
	if err != nil {
		return err
	}
	switch a := strings.ToLower(answer); a {
	case "r", "refine", "chat":
		l.state = AwaitingFreeText
		return nil
	case "q", "quit", "exit":
		l.state = Aborted
		return nil
	default:
		if i, err := strconv.Atoi(a); err == nil && i >= 1 && i <= n {
			l.chosen = l.cands[i-1]
			l.s.Log.Infof("refine: selected option %d", i)
			l.state = Confirmed
			return nil
		}
	}
	l.out.Warn("Enter a number between 1 and %d, r, or q.", n)
	return nil
}

func (l *loop) chooseResult() error {
	answer, err := l.s.Console.ReadLine("k keep, c continue refining, o original options, q quit:")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "k", "keep":
		l.state = Confirmed
	case "c", "continue":
		l.state = AwaitingFreeText
	case "o", "original", "originals":
		l.working = ""
		l.cands = l.originals
		l.state = Presenting
	case "q", "quit", "exit":
		l.state = Aborted
	default:
		l.out.Warn("Enter k, c, o, or q.")
	}
	return nil
}

func (l *loop) readRequest() error {
	text, err := l.s.Console.ReadLine("Describe the change (e.g. \"merge option 1 and 2\", \"mention the cache TTL\"):")
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	l.request = text
	l.state = Invoking
	return nil
}

// current renders the message being refined: the refined result, the only
// candidate, or every candidate with its option label.
func (l *loop) current() string {
	if l.working != "" {
		return l.working
	}
	if len(l.cands) == 1 {
		return l.cands[0]
	}
	var b strings.Builder
	for i, c := range l.cands {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(prompt.OptionMarker(l.s.Language, i+1) + "\n" + c)
	}
	return b.String()
}

func (l *loop) buildPrompt() string {
	if idx := MergeIndices(l.request, len(l.cands)); idx != nil {
		picked := make([]prompt.Picked, 0, len(idx))
		for _, i := range idx {
			picked = append(picked, prompt.Picked{Index: i, Text: l.cands[i-1]})
		}
		l.s.Log.Infof("refine: merging options %v", idx)
		return prompt.Merge(l.s.Language, picked, l.request)
	}
	return prompt.Revise(l.s.Language, l.s.Conversation.Window(l.s.HistoryTurns), l.current(), l.request)
}

func (l *loop) invoke(ctx context.Context) {
	back := AwaitingChoice
	if l.s.Generator == nil {
		l.out.Error("No model is configured; cannot refine.")
		l.state = back
		return
	}
	p := l.buildPrompt()
	l.s.Log.Payload("refine prompt", p)
	type reply struct {
		text string
		err  error
	}
	r := ui.Wrap(l.out.Writer(), "Refining...", func() reply {
		text, err := l.s.Generator.Generate(ctx, p)
		return reply{text, err}
	})
	if r.err != nil {
		l.s.Log.Errorf("refine: model error: %v", r.err)
		l.out.Error("Refinement failed: %v", r.err)
		l.state = back
		return
	}
	msg := ExtractMessage(r.text)
	if msg == "" {
		l.out.Error("The model returned no output.")
		l.state = back
		return
	}
	l.s.Conversation.Append(prompt.RoleUser, l.request)
	l.s.Conversation.Append(prompt.RoleAssistant, msg)
	l.working = msg
	l.out.Heading("Refined commit message:")
	l.out.Plain(msg)
	l.state = AwaitingChoice
}
