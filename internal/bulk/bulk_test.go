package bulk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	var r Result[int64]
	assert.NoError(t, r.Err())

	boom := errors.New("boom")
	r.Ok(1)
	r.Fail(2, boom)
	r.Ok(3)

	assert.Equal(t, 3, r.Total())
	assert.True(t, r.HasFailures())
	assert.ErrorIs(t, r.Err(), boom)
	assert.Contains(t, r.Err().Error(), "2: boom")
	assert.Equal(t, "2 of 3 succeeded, 1 failed", r.Summary())
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("  X \r\n\nX\n\t\nY")
	assert.Equal(t, []string{"X", "X", "Y"}, got)
	assert.Empty(t, SplitLines("\n \n"))
}
