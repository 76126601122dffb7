package refine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	_mergeKeyword = regexp.MustCompile(`(?i)\b(merge|combine)\b|合并|结合`)
	_integer      = regexp.MustCompile(`\d+`)
	_fenced       = regexp.MustCompile("(?s)```[^\\n`]*\\n(.*?)```")
	_label        = regexp.MustCompile(`(?im)^[^\n]*?(?:commit message|提交信息)[ \t]*[*_]*[ \t]*[:：][ \t]*[*_]*`)
)

// MergeIndices returns the distinct candidate numbers (1..n) named in a merge
// request such as "combine option 1 and option 3" or "合并选项1和2", in
// ascending order. It returns nil unless the text asks to merge or combine
// and names at least two distinct in-range candidates.
func MergeIndices(text string, n int) []int {
	if !_mergeKeyword.MatchString(text) {
		return nil
	}
	seen := map[int]bool{}
	var out []int
	for _, m := range _integer.FindAllString(text, -1) {
		i, err := strconv.Atoi(m)
		if err != nil || i < 1 || i > n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	if len(out) < 2 {
		return nil
	}
	sort.Ints(out)
	return out
}

// ExtractMessage pulls the commit message out of a conversational reply: the
// first non-empty fenced code block, else the text after a "Final commit
// message:" style label, else the whole reply.
func ExtractMessage(reply string) string {
	reply = strings.ReplaceAll(reply, "\r\n", "\n")
	for _, m := range _fenced.FindAllStringSubmatch(reply, -1) {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	if loc := _label.FindStringIndex(reply); loc != nil {
		if s := strings.TrimSpace(reply[loc[1]:]); s != "" {
			return s
		}
	}
	return strings.TrimSpace(reply)
}
