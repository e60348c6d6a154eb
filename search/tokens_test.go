package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name      string
		rendering string
		want      []string
	}{
		{"single", "[<Op move_B>]", []string{"<Op move_B>"}},
		{"several", "[<Op (exploit web1)>, <Op (pivot web1 db)>]", []string{"<Op (exploit web1)>", "<Op (pivot web1 db)>"}},
		{"non-greedy", "<a><b>", []string{"<a>", "<b>"}},
		{"no brackets", "[]", []string{}},
		{"unterminated", "<Op a", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokens(tt.rendering))
		})
	}
}

func TestTokensPerSolution(t *testing.T) {
	s, err := New(fiveGoalTask())
	if err != nil {
		t.Fatal(err)
	}
	var sols []Solution
	for sol := range s.All() {
		sols = append(sols, sol)
		if len(sols) == 2 {
			break
		}
	}
	assert.Equal(t, [][]string{
		{"<Op exploit0>"},
		{"<Op hop1>", "<Op exploit1>"},
	}, Tokens(sols))
	assert.Equal(t, [][]string{}, Tokens(nil))
}
