package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name   string
		target string
		typed  string
		want   int
	}{
		{"empty input", "anything", "", 100},
		{"empty target", "", "", 100},
		{"all correct", "cat", "cat", 100},
		{"one wrong of three", "cat", "cax", 67},
		{"all wrong", "cat", "xyz", 0},
		{"overlong input", "ab", "abcd", 50},
		{"multibyte runes", "héllo", "hél", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accuracy(tt.target, tt.typed)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestGrossWPM(t *testing.T) {
	assert.Equal(t, 4, GrossWPM(10, 30))
	assert.Equal(t, 0, GrossWPM(10, 0))
	assert.Equal(t, 60, GrossWPM(300, 60))
	// 7 runes in 60s is 1.4 words.
	assert.Equal(t, 1, GrossWPM(7, 60))
}

func TestNetWPM(t *testing.T) {
	assert.Equal(t, 4, NetWPM(4, 0, 30))
	assert.Equal(t, 2, NetWPM(4, 1, 30))
	assert.Equal(t, 0, NetWPM(4, 10, 30), "penalty floors at zero")
	assert.Equal(t, 0, NetWPM(4, 0, 0))
}

func TestNetNeverExceedsGross(t *testing.T) {
	for typed := 0; typed < 200; typed += 13 {
		for errs := 0; errs < 20; errs += 3 {
			for _, elapsed := range []float64{0, 1, 7, 30, 61} {
				m := Compute(Input{Typed: string(make([]rune, typed)), Elapsed: elapsed, Errors: errs})
				assert.LessOrEqual(t, m.NetWPM, m.GrossWPM)
				assert.GreaterOrEqual(t, m.NetWPM, 0)
			}
		}
	}
}

func TestConsistencyNeedsElevenKeystrokes(t *testing.T) {
	base := time.Unix(0, 0)
	var ts []time.Time
	for i := 0; i < 10; i++ {
		ts = append(ts, base.Add(time.Duration(i*i)*time.Second))
	}
	assert.Equal(t, 100, Consistency(ts))
	assert.Equal(t, 100, Consistency(nil))
}

func TestConsistencyEvenRhythm(t *testing.T) {
	base := time.Unix(0, 0)
	ts := make([]time.Time, 0, 20)
	for i := 0; i < 20; i++ {
		ts = append(ts, base.Add(time.Duration(i)*150*time.Millisecond))
	}
	assert.Equal(t, 100, Consistency(ts))
}

func TestConsistencyUnevenRhythm(t *testing.T) {
	base := time.Unix(0, 0)
	ts := []time.Time{base}
	// Alternating 100ms and 300ms gives mean 200 and stddev 100.
	for i := 1; i <= 12; i++ {
		step := 100 * time.Millisecond
		if i%2 == 0 {
			step = 300 * time.Millisecond
		}
		ts = append(ts, ts[len(ts)-1].Add(step))
	}
	assert.Equal(t, 50, Consistency(ts))
}

func TestConsistencyClampsAndGuardsZeroMean(t *testing.T) {
	base := time.Unix(0, 0)
	same := make([]time.Time, 12)
	for i := range same {
		same[i] = base
	}
	assert.Equal(t, 100, Consistency(same))

	wild := []time.Time{base}
	for i := 1; i <= 11; i++ {
		step := time.Millisecond
		if i == 11 {
			step = time.Hour
		}
		wild = append(wild, wild[len(wild)-1].Add(step))
	}
	assert.Equal(t, 0, Consistency(wild))
}

func TestComputeScenario(t *testing.T) {
	m := Compute(Input{Target: "cat", Typed: "cax", Elapsed: 0, Errors: 1})
	assert.Equal(t, Metrics{Accuracy: 67, GrossWPM: 0, NetWPM: 0, Consistency: 100}, m)

	m = Compute(Input{Target: "abcd efghi", Typed: "abcd efghi", Elapsed: 30})
	assert.Equal(t, 4, m.GrossWPM)
	assert.Equal(t, 4, m.NetWPM)
	assert.Equal(t, 100, m.Accuracy)
}
