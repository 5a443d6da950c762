package stats

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wpmtest/internal/model"
)

func historyOf(modes ...model.Mode) []model.TestResult {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	results := make([]model.TestResult, len(modes))
	for i, m := range modes {
		// Newest first, like the persisted history.
		results[i] = model.TestResult{
			ID:     fmt.Sprintf("r%d", i),
			Mode:   m,
			NetWPM: 100 - i*10,
			Date:   base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return results
}

func TestFilterResultsOrdersOldestFirst(t *testing.T) {
	got := FilterResults(historyOf(model.ModeSentence, model.ModeWords, model.ModeSentence), model.StatsConfig{})
	require.Len(t, got, 3)
	assert.Equal(t, "r2", got[0].ID)
	assert.Equal(t, "r0", got[2].ID)
}

func TestFilterResultsModeAndLast(t *testing.T) {
	words := model.ModeWords
	results := historyOf(model.ModeWords, model.ModeSentence, model.ModeWords, model.ModeWords)

	got := FilterResults(results, model.StatsConfig{Mode: &words, Last: 2})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"r2", "r0"}, []string{got[0].ID, got[1].ID})
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 5}, MovingAverage([]float64{2, 4, 6}, 2))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{5, 5, 5}))
	line := Sparkline([]float64{0, 10})
	assert.Equal(t, " @", line)
}

func TestRenderSummary(t *testing.T) {
	results := historyOf(model.ModeSentence, model.ModeSentence)
	date := results[0].Date
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, results, model.PersonalBest{WPM: 100, Accuracy: 97, Date: &date}))

	out := buf.String()
	assert.Contains(t, out, "Tests: 2")
	assert.Contains(t, out, "Avg WPM: 95.0")
	assert.Contains(t, out, "Personal Best: 100 WPM · 97%")
}

func TestRenderSummaryWithoutBest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, historyOf(model.ModeWords), model.PersonalBest{}))
	assert.NotContains(t, buf.String(), "Personal Best")
}

func TestRenderCurveNeedsTwoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCurve(&buf, historyOf(model.ModeWords), 3, 80))
	assert.Empty(t, buf.String())

	require.NoError(t, RenderCurve(&buf, historyOf(model.ModeWords, model.ModeWords, model.ModeWords), 1, 2))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[1], 2)
}

func TestRenderHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistoryTable(&buf, historyOf(model.ModeWords)))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.Contains(t, lines[1], "words")
}
