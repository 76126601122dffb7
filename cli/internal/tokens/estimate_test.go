package tokens

import (
	"math"
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prompt string
		want   int
	}{
		{"empty", "", 0},
		{"one_char", "x", 1},
		{"four_chars", "abcd", 1},
		{"five_chars", "abcde", 2},
		{"100_chars", strings.Repeat("x", 100), 25},
		{"cjk_is_byte_based", "提交信息", 3}, // 12 bytes
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Estimate(tt.prompt); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestWarnIfOver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		promptTokens  int
		reserve       int
		contextLimit  int
		warnThreshold float64
		wantContains  []string // nil means no warning
	}{
		{"under_threshold", 1000, 512, 32768, 0.9, nil},
		{"at_threshold", 29492 - 512, 512, 32768, 0.9, []string{"29492", "90%", "32768"}},
		{"over_threshold", 40000, 512, 32768, 0.9, []string{"40512", "prompt 40000", "reserve 512"}},
		{"limit_zero_disables", 100000, 0, 0, 0.9, nil},
		{"negative_prompt", -1, 0, 100, 0.9, nil},
		{"threshold_one_under", 32767, 0, 32768, 1.0, nil},
		{"threshold_one_at", 32768, 0, 32768, 1.0, []string{"100%"}},
		{"overflow", math.MaxInt, 1, 32768, 0.9, []string{"overflow"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WarnIfOver(tt.promptTokens, tt.reserve, tt.contextLimit, tt.warnThreshold)
			if tt.wantContains == nil {
				if got != "" {
					t.Errorf("WarnIfOver = %q, want empty", got)
				}
				return
			}
			for _, sub := range tt.wantContains {
				if !strings.Contains(got, sub) {
					t.Errorf("WarnIfOver = %q, want to contain %q", got, sub)
				}
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	r := Check(strings.Repeat("x", 400), 1000, 0.5)
	if r.PromptTokens != 100 || r.Reserve != DefaultResponseReserve || r.Limit != 1000 {
		t.Fatalf("Check = %+v", r)
	}
	if w := r.Warning(); w == "" {
		t.Error("100 + 512 reserve >= 500: want warning")
	}
	if w := Check("short", 32768, 0.9).Warning(); w != "" {
		t.Errorf("short prompt: got warning %q", w)
	}
}
