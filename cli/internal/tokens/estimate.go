// Package tokens estimates prompt size against the model's context window.
// The estimate only drives a warning; prompts are never truncated.
package tokens

import (
	"fmt"
	"math"
)

// charsPerToken is the divisor for the byte-based estimator
// (roughly 4 bytes per token for English text and code).
const charsPerToken = 4

// DefaultResponseReserve is the number of tokens kept free for the reply
// when comparing a prompt against the context limit.
const DefaultResponseReserve = 512

// Estimate returns (len(prompt)+3)/4: 0 for an empty prompt, 1 for 1–4
// bytes, 2 for 5–8, and so on.
func Estimate(prompt string) int {
	n := len(prompt)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// Report describes one prompt measured against a context limit.
type Report struct {
	PromptTokens int
	Reserve      int
	Limit        int
	Threshold    float64 // fraction of Limit that triggers the warning
}

// Check estimates prompt and fills a Report with the given limit and threshold.
func Check(prompt string, contextLimit int, warnThreshold float64) Report {
	return Report{
		PromptTokens: Estimate(prompt),
		Reserve:      DefaultResponseReserve,
		Limit:        contextLimit,
		Threshold:    warnThreshold,
	}
}

// Warning returns a message when prompt plus reserve meets or exceeds
// Threshold of Limit, and "" otherwise. A Limit <= 0 disables the check.
func (r Report) Warning() string {
	return WarnIfOver(r.PromptTokens, r.Reserve, r.Limit, r.Threshold)
}

// WarnIfOver is Report.Warning on raw token counts.
func WarnIfOver(promptTokens, responseReserve, contextLimit int, warnThreshold float64) string {
	if contextLimit <= 0 || promptTokens < 0 || responseReserve < 0 {
		return ""
	}
	if responseReserve > math.MaxInt-promptTokens {
		return fmt.Sprintf("prompt size estimate overflow (prompt %d + reserve %d)", promptTokens, responseReserve)
	}
	total := promptTokens + responseReserve
	threshold := int(math.Ceil(float64(contextLimit) * warnThreshold))
	if total < threshold {
		return ""
	}
	return fmt.Sprintf("prompt is about %d tokens (prompt %d + reserve %d), %.0f%% or more of the %d-token context; the model may ignore part of the diff",
		total, promptTokens, responseReserve, warnThreshold*100, contextLimit)
}
