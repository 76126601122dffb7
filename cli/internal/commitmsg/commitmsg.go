// Package commitmsg turns one model call into the initial candidate set.
// Model failures never abort generation: they become visible candidate text
// so the user still sees something and can retry or refine.
package commitmsg

import (
	"context"
	"errors"
	"fmt"

	"smartcommit/cli/internal/lang"
	"smartcommit/cli/internal/options"
	"smartcommit/cli/internal/runner"
)

// Generator sends one prompt to a model and returns its reply. It is
// implemented by runner.Process and ollama.Generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of Candidates.
type Result struct {
	Candidates []string // always the requested count
	Raw        string   // the model reply, or the failure text
	Err        error    // the model error, if any; Candidates then hold FailureText
}

// Candidates asks gen for count candidate messages. With count 1 the trimmed
// reply is the only candidate and no parsing happens; otherwise the reply is
// split with options.Parse.
func Candidates(ctx context.Context, gen Generator, prompt string, count int, l lang.Language) Result {
	if count < 1 {
		count = 1
	}
	if gen == nil {
		err := fmt.Errorf("%w: no generator", runner.ErrModelUnavailable)
		return failed(err, count, l)
	}
	reply, err := gen.Generate(ctx, prompt)
	if err != nil {
		return failed(err, count, l)
	}
	if reply == "" {
		reply = EmptyText(l)
	}
	if count == 1 {
		return Result{Candidates: []string{reply}, Raw: reply}
	}
	return Result{Candidates: options.Parse(reply, count, l), Raw: reply}
}

func failed(err error, count int, l lang.Language) Result {
	text := FailureText(l, err)
	cands := make([]string, count)
	cands[0] = text
	for i := 1; i < count; i++ {
		cands[i] = options.Placeholder
	}
	return Result{Candidates: cands, Raw: text, Err: err}
}

// FailureText renders a model error as candidate text.
func FailureText(l lang.Language, err error) string {
	zh := l == lang.Chinese
	switch {
	case errors.Is(err, runner.ErrModelUnavailable) && zh:
		return "LLM调用失败：未找到模型运行程序"
	case errors.Is(err, runner.ErrModelUnavailable):
		return "Commit message generation failed: model runner not found"
	case zh:
		return fmt.Sprintf("LLM调用失败: %v", err)
	default:
		return fmt.Sprintf("Commit message generation failed: %v", err)
	}
}

// EmptyText stands in for a reply with no output.
func EmptyText(l lang.Language) string {
	if l == lang.Chinese {
		return "LLM没有返回任何输出"
	}
	return "(the model returned no output)"
}
