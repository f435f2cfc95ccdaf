package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerLine_ElapsedShownAfterOneSecond(t *testing.T) {
	assert.NotContains(t, spinnerLine(0, "Parsing work log...", 500*time.Millisecond), "(")
	assert.Contains(t, spinnerLine(3, "Parsing work log...", 2500*time.Millisecond), "(2s)")
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Parsing work log...")
	time.Sleep(3 * spinnerTick)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "Parsing work log...")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
