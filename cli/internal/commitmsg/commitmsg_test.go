package commitmsg

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcommit/cli/internal/lang"
	"smartcommit/cli/internal/options"
	"smartcommit/cli/internal/runner"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestCandidates_singleOptionBypassesParser(t *testing.T) {
	t.Parallel()
	// Markers would be split by the parser; with one option the reply is kept verbatim.
	reply := "Option 1: Add cache\n\nOption 2: Cache lookups"
	gen := &fakeGenerator{reply: reply}
	res := Candidates(context.Background(), gen, "the prompt", 1, lang.English)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{reply}, res.Candidates)
	assert.Equal(t, []string{"the prompt"}, gen.prompts)
}

func TestCandidates_multipleOptionsParsed(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{reply: "Option 1: A\n\nOption 2: B"}
	res := Candidates(context.Background(), gen, "p", 3, lang.English)
	assert.Equal(t, []string{"A", "B", options.Placeholder}, res.Candidates)
	assert.Equal(t, gen.reply, res.Raw)
}

func TestCandidates_failureBecomesText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		err   error
		count int
		lang  lang.Language
		want  string
	}{
		{"invocation en", fmt.Errorf("%w: exit status 1", runner.ErrInvocationFailed), 1, lang.English, "Commit message generation failed: model invocation failed: exit status 1"},
		{"unavailable en", runner.ErrModelUnavailable, 2, lang.English, "Commit message generation failed: model runner not found"},
		{"unavailable zh", runner.ErrModelUnavailable, 1, lang.Chinese, "LLM调用失败：未找到模型运行程序"},
		{"other zh", errors.New("boom"), 3, lang.Chinese, "LLM调用失败: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Candidates(context.Background(), &fakeGenerator{err: tt.err}, "p", tt.count, tt.lang)
			require.ErrorIs(t, res.Err, tt.err)
			require.Len(t, res.Candidates, tt.count)
			assert.Equal(t, tt.want, res.Candidates[0])
			for _, c := range res.Candidates[1:] {
				assert.Equal(t, options.Placeholder, c)
			}
		})
	}
}

func TestCandidates_emptyReply(t *testing.T) {
	t.Parallel()
	res := Candidates(context.Background(), &fakeGenerator{}, "p", 1, lang.English)
	assert.Equal(t, []string{EmptyText(lang.English)}, res.Candidates)
	assert.NoError(t, res.Err)
}

func TestCandidates_nilGenerator(t *testing.T) {
	t.Parallel()
	res := Candidates(context.Background(), nil, "p", 0, lang.English)
	assert.ErrorIs(t, res.Err, runner.ErrModelUnavailable)
	assert.Len(t, res.Candidates, 1)
}
