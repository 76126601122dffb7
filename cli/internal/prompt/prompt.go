// Package prompt renders the prompts sent to the model: the initial
// generation prompt from a change set, the merge prompt for combining
// candidates, and the revision prompt for a refinement request. All text
// comes from one table keyed by language and section, and every builder is
// a pure function of its inputs.
package prompt

import (
	"fmt"
	"strings"

	"smartcommit/cli/internal/changes"
	"smartcommit/cli/internal/lang"
)

// Options selects the output language and how many candidates to ask for.
type Options struct {
	Language    lang.Language
	OptionCount int
}

// Role is the speaker of one conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Turn is one entry of the refinement conversation.
type Turn struct {
	Role    Role   `yaml:"role"`
	Content string `yaml:"content"`
}

// Picked is a candidate chosen for a merge, with its 1-based index.
type Picked struct {
	Index int
	Text  string
}

// OptionMarker returns the label the model is asked to put before candidate n ("Option 2:").
func OptionMarker(l lang.Language, n int) string {
	return fmt.Sprintf(text(l, optionMarker), n)
}

// Build renders the generation prompt for c.
func Build(c changes.Context, opts Options) string {
	l := opts.Language
	var b strings.Builder
	b.WriteString(text(l, intro))
	b.WriteString("\n\n")

	b.WriteString(text(l, repoHeader) + "\n")
	fmt.Fprintf(&b, text(l, repoName)+"\n", c.RepositoryName)
	fmt.Fprintf(&b, text(l, branchName)+"\n", c.BranchName)
	b.WriteString(text(l, recentHeader) + "\n")
	if len(c.RecentCommits) == 0 {
		b.WriteString(text(l, noCommits) + "\n")
	}
	for _, s := range c.RecentCommits {
		b.WriteString(s + "\n")
	}
	b.WriteString("\n")

	b.WriteString(text(l, changesHeader) + "\n")
	b.WriteString(text(l, fileStatusHeader) + "\n")
	b.WriteString(c.StagedFileStatus + "\n\n")
	b.WriteString(text(l, diffHeader) + "\n")
	b.WriteString(c.StagedDiff + "\n\n")

	if len(c.Submodules) > 0 {
		b.WriteString(text(l, submodulesHeader) + "\n")
		for _, s := range c.Submodules {
			fmt.Fprintf(&b, text(l, submoduleUpdated)+"\n", s.Path, s.OldRef, s.NewRef)
			if len(s.Subjects) == 0 {
				b.WriteString(text(l, submoduleNoSubjects) + "\n")
			}
			for _, subj := range s.Subjects {
				b.WriteString(subj + "\n")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(text(l, rulesHeader) + "\n")
	for _, s := range []Section{ruleTense, ruleSummary, ruleBlankLine, ruleWhy} {
		b.WriteString(text(l, s) + "\n")
	}
	b.WriteString(text(l, ruleIssues))

	b.WriteString("\n\n")
	if opts.OptionCount > 1 {
		fmt.Fprintf(&b, text(l, optionsInstruction), opts.OptionCount, text(l, optionLabel), OptionMarker(l, 1))
	} else {
		b.WriteString(text(l, singleInstruction))
	}
	return b.String()
}

// Merge renders a prompt asking the model to combine the picked candidates,
// quoted verbatim, following the user's instruction.
func Merge(l lang.Language, picked []Picked, instruction string) string {
	var b strings.Builder
	b.WriteString(text(l, mergeIntro))
	b.WriteString("\n\n")
	for _, p := range picked {
		fmt.Fprintf(&b, text(l, mergeCandidate)+"\n", p.Index)
		b.WriteString(strings.TrimSpace(p.Text) + "\n\n")
	}
	b.WriteString(text(l, mergeRequest) + "\n")
	b.WriteString(strings.TrimSpace(instruction) + "\n\n")
	b.WriteString(text(l, rulesHeader) + "\n")
	for _, s := range []Section{ruleTense, ruleSummary, ruleBlankLine, ruleWhy, ruleIssues} {
		b.WriteString(text(l, s) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(text(l, mergeOutput))
	return b.String()
}

// Revise renders a prompt embedding turns (already trimmed by the caller),
// the current working message, and the new instruction.
func Revise(l lang.Language, turns []Turn, current, instruction string) string {
	var b strings.Builder
	b.WriteString(text(l, reviseIntro))
	b.WriteString("\n\n")
	if len(turns) > 0 {
		b.WriteString(text(l, transcriptHeader) + "\n")
		for _, t := range turns {
			fmt.Fprintf(&b, "[%s]\n%s\n\n", roleLabel(l, t.Role), strings.TrimSpace(t.Content))
		}
	}
	b.WriteString(text(l, currentHeader) + "\n")
	b.WriteString(strings.TrimSpace(current) + "\n\n")
	b.WriteString(text(l, reviseRequest) + "\n")
	b.WriteString(strings.TrimSpace(instruction) + "\n\n")
	b.WriteString(text(l, reviseOutput))
	return b.String()
}

func roleLabel(l lang.Language, r Role) string {
	switch r {
	case RoleSystem:
		return text(l, roleSystem)
	case RoleAssistant:
		return text(l, roleAssistant)
	default:
		return text(l, roleUser)
	}
}
