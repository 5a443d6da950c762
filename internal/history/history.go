// Package history keeps the test result history and the personal best in a
// key-value store.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/wpmtest/internal/model"
)

const (
	// HistoryKey stores the newest-first result list.
	HistoryKey = "typingHistory"
	// BestKey stores the personal best record.
	BestKey = "personalBest"
	// MaxResults caps the stored history.
	MaxResults = 50
)

// KV is the persistence port. Load reports ok=false for absent keys.
type KV interface {
	Load(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// Book holds the hydrated history and personal best and writes them through
// on every change.
type Book struct {
	kv      KV
	results []model.TestResult
	best    model.PersonalBest
}

// Open hydrates a Book from kv. Missing or unreadable blobs fall back to an
// empty history and a zero personal best.
func Open(ctx context.Context, kv KV) *Book {
	b := &Book{kv: kv}
	if !b.load(ctx, HistoryKey, &b.results) {
		b.results = nil
	}
	if len(b.results) > MaxResults {
		b.results = b.results[:MaxResults]
	}
	if !b.load(ctx, BestKey, &b.best) {
		b.best = model.PersonalBest{}
	}
	return b
}

func (b *Book) load(ctx context.Context, key string, dst any) bool {
	blob, ok, err := b.kv.Load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read stored value, using default")
		return false
	}
	if !ok || len(blob) == 0 {
		return false
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Malformed stored value, using default")
		return false
	}
	return true
}

// Results returns the history, newest first.
func (b *Book) Results() []model.TestResult {
	out := make([]model.TestResult, len(b.results))
	copy(out, b.results)
	return out
}

// Best returns the personal best.
func (b *Book) Best() model.PersonalBest {
	return b.best
}

// Record prepends r to the history, truncates it to MaxResults, updates the
// personal best when r beats it and persists both. It reports whether r set a
// new personal best. In-memory state is updated even when saving fails.
func (b *Book) Record(ctx context.Context, r model.TestResult) (bool, error) {
	results := make([]model.TestResult, 0, min(len(b.results)+1, MaxResults))
	results = append(results, r)
	results = append(results, b.results...)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	b.results = results

	newBest := b.best.BeatenBy(r)
	if newBest {
		date := r.Date
		b.best = model.PersonalBest{WPM: r.NetWPM, Accuracy: r.Accuracy, Date: &date}
	}

	err := b.save(ctx, HistoryKey, b.results)
	if newBest {
		err = errors.Join(err, b.save(ctx, BestKey, b.best))
	}
	return newBest, err
}

// Clear wipes the history and the personal best.
func (b *Book) Clear(ctx context.Context) error {
	b.results = nil
	b.best = model.PersonalBest{}
	var errs []error
	for _, key := range []string{HistoryKey, BestKey} {
		if err := b.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Book) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := b.kv.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
