package timing

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerSummary(t *testing.T) {
	timer := Start()
	time.Sleep(5 * time.Millisecond)
	timer.RecordFirstByte()
	time.Sleep(5 * time.Millisecond)
	timer.Finish()

	s := timer.Summary()
	require.True(t, s.HasFirstByte)
	assert.GreaterOrEqual(t, s.FirstByte, 5*time.Millisecond)
	assert.GreaterOrEqual(t, s.Total, 10*time.Millisecond)
	assert.Less(t, s.FirstByte, s.Total)
	assert.Equal(t, s.Total-s.FirstByte, s.Download)
}

func TestTimerWithoutFirstByte(t *testing.T) {
	timer := Start()
	timer.Finish()

	s := timer.Summary()
	assert.False(t, s.HasFirstByte)
	assert.Zero(t, s.FirstByte)
	assert.Zero(t, s.Download)
}

func TestTimerUnfinished(t *testing.T) {
	timer := Start()
	assert.Zero(t, timer.Summary())

	var buffer bytes.Buffer
	timer.PrintSummary(&buffer, false)
	assert.Empty(t, buffer.String())
}

func TestTimerNilIsSafe(t *testing.T) {
	var timer *Timer
	timer.RecordFirstByte()
	timer.Finish()
	assert.Zero(t, timer.Summary())

	var buffer bytes.Buffer
	timer.PrintSummary(&buffer, false)
	assert.Empty(t, buffer.String())
}

func TestSummaryRating(t *testing.T) {
	testCases := []struct {
		total    time.Duration
		expected string
	}{
		{50 * time.Millisecond, "Excellent response time!"},
		{99 * time.Millisecond, "Excellent response time!"},
		{100 * time.Millisecond, "Good response time"},
		{499 * time.Millisecond, "Good response time"},
		{500 * time.Millisecond, "Slow response"},
		{999 * time.Millisecond, "Slow response"},
		{time.Second, "Very slow response"},
		{3 * time.Second, "Very slow response"},
	}
	for _, tt := range testCases {
		assert.Equal(t, tt.expected, Summary{Total: tt.total}.Rating(), tt.total.String())
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500.00 µs", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "50.00 ms", FormatDuration(50*time.Millisecond))
	assert.Equal(t, "2.00 s", FormatDuration(2*time.Second))
}

func TestPrintSummary(t *testing.T) {
	timer := Start()
	timer.RecordFirstByte()
	timer.Finish()

	var buffer bytes.Buffer
	timer.PrintSummary(&buffer, false)
	out := buffer.String()

	assert.Contains(t, out, "Timing Summary")
	assert.Contains(t, out, "Time to First Byte:")
	assert.Contains(t, out, "Download Time:")
	assert.Contains(t, out, "Total Time:")
	assert.Contains(t, out, "Excellent response time!")
}
