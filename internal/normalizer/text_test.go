package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTemplates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "conditional removed, surrounding text preserved",
			input: "Deals {level>=5 ? '3d6' : '2d6'} damage",
			want:  "Deals damage",
		},
		{
			name:  "array index expression removed",
			input: "Your die is {[bardicDice][level]} at this level.",
			want:  "Your die is at this level.",
		},
		{
			name:  "plain text untouched",
			input: "A creature you touch regains hit points.",
			want:  "A creature you touch regains hit points.",
		},
		{
			name:  "multiple expressions in one string",
			input: "{a ? b : c} start {x ? y : z} end",
			want:  "start end",
		},
		{
			name:  "whitespace runs collapse",
			input: "too   many\n\nspaces",
			want:  "too many spaces",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "braces without template syntax survive",
			input: "use {command} here",
			want:  "use {command} here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTemplates(tt.input))
		})
	}
}

func TestStripTemplates_Idempotent(t *testing.T) {
	inputs := []string{
		"Deals {level>=5 ? '3d6' : '2d6'} damage",
		"nothing to strip",
		"{[a][b]} {c ? d : e}",
	}
	for _, in := range inputs {
		once := StripTemplates(in)
		assert.Equal(t, once, StripTemplates(once), "input %q", in)
	}
}

func TestStripTemplates_PathologicalInputTerminates(t *testing.T) {
	// Deep nesting cannot loop past the input-length bound.
	pathological := strings.Repeat("{a?", 500) + strings.Repeat("}", 500)
	_ = StripTemplates(pathological)
}
