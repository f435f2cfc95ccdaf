package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a whole-percent progress bar like [████░░░░]  45%.
// Green from 67%, yellow from 33%, red below.
func RenderProgress(pct int, width int) string {
	pct = clamp(pct, 0, 100)
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 67:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderBudget renders logged hours against expected hours. Overrun turns red.
func RenderBudget(spent, expected float64, width int) string {
	if expected <= 0 {
		return Dim(FormatHours(spent) + " logged, no budget")
	}
	ratio := spent / expected
	pct := int(ratio * 100)
	filled := clamp(pct, 0, 100) * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case ratio > 1:
		style = StyleRed
	case ratio >= 0.8:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s / %s", style.Render(bar), FormatHours(spent), FormatHours(expected))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
