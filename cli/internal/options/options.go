// Package options splits one model reply into a fixed number of candidate
// commit messages. The model is asked to label candidates ("Option 1:",
// "选项1:"), but nothing enforces it, so parsing falls through progressively
// weaker tiers and never fails:
//
//  1. SplitMarkers: numbered marker labels
//  2. SplitTripleNewline: blocks separated by two blank lines
//  3. SplitKeyword: the bare marker keyword, numbering ignored
//  4. the whole reply as the only candidate
//
// Parse then pads with Placeholder or truncates to the requested count.
package options

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"smartcommit/cli/internal/lang"
)

// Placeholder fills slots the reply did not provide.
const Placeholder = "(generation failed)"

// Parse returns exactly expected candidates (at least one) parsed from response.
func Parse(response string, expected int, l lang.Language) []string {
	if expected < 1 {
		expected = 1
	}
	response = strings.ReplaceAll(response, "\r\n", "\n")
	var got []string
	for _, tier := range []func(string, int, lang.Language) []string{
		SplitMarkers,
		SplitTripleNewline,
		SplitKeyword,
		whole,
	} {
		if got = tier(response, expected, l); len(got) > 0 {
			break
		}
	}
	return fit(got, expected)
}

func fit(pieces []string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(pieces) {
			out = append(out, pieces[i])
		} else {
			out = append(out, Placeholder)
		}
	}
	return out
}

func whole(response string, _ int, _ lang.Language) []string {
	if s := strings.TrimSpace(response); s != "" {
		return []string{s}
	}
	return nil
}

// markerFamily matches "<Keyword> N:" with optional markdown bold around the
// label and an ASCII or full-width colon.
func markerFamily(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\*{0,2}` + regexp.QuoteMeta(keyword) + `\s*(\d+)\s*\*{0,2}\s*[:：]\s*\*{0,2}`)
}

var (
	_englishFamilies = []*regexp.Regexp{
		markerFamily("Option"),
		markerFamily("OPTION"),
		markerFamily("Alternative"),
	}
	_chineseFamilies = append([]*regexp.Regexp{
		markerFamily("选项"),
		markerFamily("方案"),
	}, _englishFamilies...)
)

func families(l lang.Language) []*regexp.Regexp {
	if l == lang.Chinese {
		return _chineseFamilies
	}
	return _englishFamilies
}

type marker struct {
	index      int
	start, end int
}

// SplitMarkers uses the first marker family with at least one match. Markers
// numbered outside [1, expected] are ignored; the text between consecutive
// markers (and after the last) forms the candidates in position order. The
// split is accepted only when it yields exactly expected pieces.
func SplitMarkers(response string, expected int, l lang.Language) []string {
	for _, re := range families(l) {
		locs := re.FindAllStringSubmatchIndex(response, -1)
		if len(locs) == 0 {
			continue
		}
		var ms []marker
		for _, loc := range locs {
			n, err := strconv.Atoi(response[loc[2]:loc[3]])
			if err != nil || n < 1 || n > expected {
				continue
			}
			ms = append(ms, marker{index: n, start: loc[0], end: loc[1]})
		}
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].start < ms[j].start })
		if len(ms) != expected {
			return nil
		}
		pieces := make([]string, 0, len(ms))
		for i, m := range ms {
			stop := len(response)
			if i+1 < len(ms) {
				stop = ms[i+1].start
			}
			pieces = append(pieces, clean(response[m.end:stop]))
		}
		return pieces
	}
	return nil
}

// SplitTripleNewline splits on "\n\n\n" and keeps the first expected
// non-empty blocks, provided there are at least that many.
func SplitTripleNewline(response string, expected int, _ lang.Language) []string {
	var pieces []string
	for _, p := range strings.Split(response, "\n\n\n") {
		if p = clean(p); p != "" {
			pieces = append(pieces, p)
		}
	}
	if len(pieces) < expected {
		return nil
	}
	return pieces[:expected]
}

var _leadingNumber = regexp.MustCompile(`^\s*\*{0,2}\s*\d+\s*\*{0,2}\s*[:：.)]\s*\*{0,2}`)

// SplitKeyword splits on the bare keyword ("Option", or "选项" for Chinese),
// drops the text before the first occurrence, strips a leading "<number>:"
// from each fragment, and keeps up to expected non-empty fragments.
func SplitKeyword(response string, expected int, l lang.Language) []string {
	keyword := "Option"
	if l == lang.Chinese {
		keyword = "选项"
	}
	frags := splitOnKeyword(response, keyword)
	if len(frags) < 2 {
		return nil
	}
	var pieces []string
	for _, f := range frags[1:] {
		f = clean(_leadingNumber.ReplaceAllString(f, ""))
		if f == "" {
			continue
		}
		pieces = append(pieces, f)
		if len(pieces) == expected {
			break
		}
	}
	return pieces
}

// splitOnKeyword splits s at every occurrence of keyword that is not part of
// a longer word ("Optional" does not split).
func splitOnKeyword(s, keyword string) []string {
	var frags []string
	last := 0
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], keyword)
		if j < 0 {
			break
		}
		at := i + j
		after := at + len(keyword)
		if isWordBoundary(s, at, after) {
			frags = append(frags, s[last:at])
			last = after
		}
		i = after
	}
	return append(frags, s[last:])
}

func isWordBoundary(s string, start, end int) bool {
	if r, _ := utf8.DecodeLastRuneInString(s[:start]); start > 0 && isLatinLetter(r) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(s[end:]); end < len(s) && isLatinLetter(r) {
		return false
	}
	return true
}

func isLatinLetter(r rune) bool {
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}

// clean trims whitespace and dangling markdown heading or rule characters
// left behind by the next marker.
func clean(s string) string {
	s = strings.TrimSpace(s)
	for {
		t := strings.TrimSpace(strings.TrimRight(s, "#-*"))
		if t == s {
			return s
		}
		s = t
	}
}
