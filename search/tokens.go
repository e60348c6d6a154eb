package search

import "regexp"

var tokenPattern = regexp.MustCompile(`<.*?>`)

// ExtractTokens returns every "<...>" token in rendering, in order.
func ExtractTokens(rendering string) []string {
	m := tokenPattern.FindAllString(rendering, -1)
	if m == nil {
		return []string{}
	}
	return m
}

// Tokens extracts the tokens of each solution's rendering.
func Tokens(sols []Solution) [][]string {
	out := make([][]string, len(sols))
	for i, s := range sols {
		out[i] = ExtractTokens(s.String())
	}
	return out
}
