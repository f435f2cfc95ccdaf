package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    int
		filled int
		label  string
	}{
		{"zero", 0, 0, "  0%"},
		{"half", 50, 5, " 50%"},
		{"full", 100, 10, "100%"},
		{"over clamps", 150, 10, "100%"},
		{"negative clamps", -5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 10)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.label), "got %q", got)
		})
	}
}

func TestRenderBudget(t *testing.T) {
	got := RenderBudget(32, 40, 10)
	assert.Equal(t, 8, strings.Count(got, filledBlock))
	assert.Contains(t, got, "32h / 40h")

	over := RenderBudget(50, 40, 10)
	assert.Equal(t, 10, strings.Count(over, filledBlock))

	assert.Contains(t, RenderBudget(3, 0, 10), "no budget")
}
