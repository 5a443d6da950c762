// Package stats contains metric calculations and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/wpmtest/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FilterResults applies the stats config to a newest-first history and
// returns the selection oldest-first, ready for curves.
func FilterResults(results []model.TestResult, cfg model.StatsConfig) []model.TestResult {
	selected := make([]model.TestResult, 0, len(results))
	for _, r := range results {
		if cfg.Mode != nil && r.Mode != *cfg.Mode {
			continue
		}
		selected = append(selected, r)
		if cfg.Last > 0 && len(selected) == cfg.Last {
			break
		}
	}
	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}
	return selected
}

// RenderSummary prints aggregate figures and the personal best.
func RenderSummary(w io.Writer, results []model.TestResult, best model.PersonalBest) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No tests found.")
		return err
	}
	var totalWPM, totalAcc, totalCons float64
	for _, r := range results {
		totalWPM += float64(r.NetWPM)
		totalAcc += float64(r.Accuracy)
		totalCons += float64(r.Consistency)
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d", len(results)),
		fmt.Sprintf("Avg WPM: %.1f", totalWPM/count),
		fmt.Sprintf("Avg Accuracy: %.1f%%", totalAcc/count),
		fmt.Sprintf("Avg Consistency: %.1f%%", totalCons/count),
	}
	if best.Date != nil {
		lines = append(lines, fmt.Sprintf("Personal Best: %d WPM · %d%% (%s)", best.WPM, best.Accuracy, best.Date.Local().Format("2006-01-02")))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve prints a WPM sparkline, smoothed by window and resampled to width.
func RenderCurve(w io.Writer, results []model.TestResult, window, width int) error {
	if len(results) < 2 {
		return nil
	}
	wpms := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.NetWPM)
	}
	wpms = MovingAverage(wpms, window)
	if width > 0 && len(wpms) > width {
		wpms = wpms[len(wpms)-width:]
	}
	if _, err := fmt.Fprintf(w, "WPM trend (window %d)\n", window); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Sparkline(wpms)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints one row per result, oldest first.
func RenderHistoryTable(w io.Writer, results []model.TestResult) error {
	if len(results) == 0 {
		return nil
	}
	headers := []string{"Date", "Mode", "Level", "Time", "WPM", "Raw", "Acc", "Cons", "Errors"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, ResultRow(r))
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ResultRow formats a result as table cells.
func ResultRow(r model.TestResult) []string {
	return []string{
		r.Date.Local().Format("2006-01-02 15:04"),
		r.Mode.String(),
		r.Difficulty.String(),
		fmt.Sprintf("%ds", r.TimeLimit),
		fmt.Sprintf("%d", r.NetWPM),
		fmt.Sprintf("%d", r.GrossWPM),
		fmt.Sprintf("%d%%", r.Accuracy),
		fmt.Sprintf("%d%%", r.Consistency),
		fmt.Sprintf("%d", r.Errors),
	}
}
