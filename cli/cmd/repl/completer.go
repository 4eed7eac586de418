package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "clear", "quit"}

// keywords are the language keywords offered as eval-mode completions.
var keywords = []string{"array", "def"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace and the language's punctuation. The
// reference sigil '$' is intentionally excluded so that a partially typed
// "$ba" completes to "$base_port$".
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '{', '}',
		'=', ',', ';', '@':
		return true
	}

	return false
}

// wordBounds returns the word containing the cursor and its byte offsets
// within input. The word is empty when the cursor sits on a boundary (after
// a space, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	start = min(cursor, len(input))
	end = start

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns the completion candidates for eval mode: the
// language keywords plus a $name$ reference for each session constant.
// A word that begins with the reference sigil completes only to references.
func evalCandidates(names []string, word string) []string {
	refs := make([]string, len(names))
	for i, name := range names {
		refs[i] = "$" + name + "$"
	}

	if strings.HasPrefix(word, "$") {
		return refs
	}

	return slices.Concat(keywords, refs)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. An empty word yields no matches so the hint text
// stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, nil, start, end
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		candidates = evalCandidates(m.session.names(), word)
	}

	if len(candidates) == 0 {
		return nil, nil, start, end
	}

	return fuzzy.Find(word, candidates), candidates, start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width terminal cells. Matched characters in each candidate are
// highlighted, and the candidate selected while cycling is inverted.
func renderCandidateBar(
	matches fuzzy.Matches,
	picked int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		entry := renderCandidate(match, cycling && i == picked)

		need := lipgloss.Width(entry)
		if i > 0 {
			need += lipgloss.Width(sep)
		}

		// Truncate rather than overflow, keeping room for the ellipsis.
		if i > 0 && used+need+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(entry)

		used += need
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	plain := suggestionStyle
	bold := suggestionStyle.Bold(true)

	if selected {
		plain = selectedStyle
		bold = selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}

	return b.String()
}
