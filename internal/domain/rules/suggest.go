package rules

import (
	"sort"
	"strings"

	"github.com/fatih/camelcase"
)

// didYouMean builds a "Did you mean" hint by ranking candidates against the
// unknown name. Returns an empty string when nothing comes close.
func didYouMean(name string, candidates []string) string {
	matches := closestMatches(name, candidates, 3)
	if len(matches) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(matches, ", ") + "?"
}

// closestMatches ranks candidates by shared camel-case tokens plus common
// prefix length. Deterministic: ties break on candidate name.
func closestMatches(name string, candidates []string, n int) []string {
	target := tokenize(name)

	type scored struct {
		name  string
		score float64
	}
	var ranked []scored

	for _, c := range candidates {
		s := similarity(target, name, tokenize(c), c)
		if s >= 0.4 {
			ranked = append(ranked, scored{c, s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}
	return out
}

// tokenize splits a dotted, camel-cased identifier into lowercase tokens.
func tokenize(name string) map[string]bool {
	tokens := make(map[string]bool)
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '.' || r == '_' || r == ' ' }) {
		for _, tok := range camelcase.Split(part) {
			tokens[strings.ToLower(tok)] = true
		}
	}
	return tokens
}

func similarity(aTokens map[string]bool, a string, bTokens map[string]bool, b string) float64 {
	shared := 0
	for t := range aTokens {
		if bTokens[t] {
			shared++
		}
	}
	union := len(aTokens) + len(bTokens) - shared
	overlap := 0.0
	if union > 0 {
		overlap = float64(shared) / float64(union)
	}

	// Common prefix softens the token score for single-token typos
	// (getBgpTble vs getBgpTable share a long prefix but few tokens).
	prefix := commonPrefixLen(strings.ToLower(a), strings.ToLower(b))
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	prefixScore := 0.0
	if longest > 0 {
		prefixScore = float64(prefix) / float64(longest)
	}

	return 0.6*overlap + 0.4*prefixScore
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
