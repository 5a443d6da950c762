package stats

import (
	"math"
	"time"
)

const (
	charsPerWord = 5.0
	// minConsistencyKeystrokes is the number of keystrokes needed before
	// rhythm is measured.
	minConsistencyKeystrokes = 11
)

// Input is everything the metrics depend on.
type Input struct {
	Target     string
	Typed      string
	Elapsed    float64 // seconds
	Errors     int
	Keystrokes []time.Time
}

// Metrics is a snapshot of the derived values for a session.
type Metrics struct {
	Accuracy    int
	GrossWPM    int
	NetWPM      int
	Consistency int
}

// Compute derives all metrics from in.
func Compute(in Input) Metrics {
	gross := GrossWPM(len([]rune(in.Typed)), in.Elapsed)
	return Metrics{
		Accuracy:    Accuracy(in.Target, in.Typed),
		GrossWPM:    gross,
		NetWPM:      NetWPM(gross, in.Errors, in.Elapsed),
		Consistency: Consistency(in.Keystrokes),
	}
}

// Accuracy returns the rounded percentage of typed runes that match the target
// at the same position. An empty input is 100% accurate.
func Accuracy(target, typed string) int {
	typedRunes := []rune(typed)
	if len(typedRunes) == 0 {
		return 100
	}
	targetRunes := []rune(target)
	n := min(len(typedRunes), len(targetRunes))
	correct := 0
	for i := 0; i < n; i++ {
		if typedRunes[i] == targetRunes[i] {
			correct++
		}
	}
	return round(100 * float64(correct) / float64(len(typedRunes)))
}

// GrossWPM converts typed runes to five-character words per minute.
func GrossWPM(typedLen int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return round((float64(typedLen) / charsPerWord) / (elapsedSeconds / 60))
}

// NetWPM penalizes gross WPM by errors per minute, floored at zero.
func NetWPM(gross, errors int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	net := round(float64(gross) - float64(errors)/(elapsedSeconds/60))
	if net < 0 {
		return 0
	}
	return net
}

// Consistency scores the regularity of inter-keystroke intervals from 0 to 100
// as 100 minus the coefficient of variation in percent.
func Consistency(keystrokes []time.Time) int {
	if len(keystrokes) < minConsistencyKeystrokes {
		return 100
	}
	intervals := make([]float64, 0, len(keystrokes)-1)
	for i := 1; i < len(keystrokes); i++ {
		intervals = append(intervals, float64(keystrokes[i].Sub(keystrokes[i-1]))/float64(time.Millisecond))
	}
	mean, stddev := meanStddev(intervals)
	if mean == 0 {
		return 100
	}
	score := round(100 - 100*stddev/mean)
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func meanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

// round rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
