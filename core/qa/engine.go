package qa

import (
	"context"
	"log/slog"
	"time"

	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
)

// ProduceFunc generates one candidate item. Errors are attempt failures,
// not run failures: the engine records them and keeps going.
type ProduceFunc func(ctx context.Context) (*model.Item, error)

// Bank is the content bank capability the engine fills. Implementations
// persist approved items and expose the existing ones for duplicate checks.
type Bank interface {
	ListExisting(ctx context.Context, kind model.ItemKind, subject string) ([]*model.Item, error)
	Add(ctx context.Context, item *model.Item) error
}

// Engine fills a content bank to a target count, rejecting candidates that
// fail structural, content, correctness or duplicate checks
type Engine struct {
	bank Bank
	log  *slog.Logger

	// MinAnswerWords is the content-length floor, DefaultMinAnswerWords when zero.
	MinAnswerWords int
	// Pacing is an optional delay between attempts, for rate-limited backends.
	Pacing time.Duration
	// BatchSize caps concurrent generation calls in FillBatch, 1 when zero.
	BatchSize int
}

// NewEngine creates a QA engine over the given content bank
func NewEngine(bank Bank, logger *slog.Logger) *Engine {
	return &Engine{
		bank: bank,
		log:  logger,
	}
}

// FillToTarget generates candidates one at a time until target items passed
// all checks or maxAttempts candidates were tried. Accepted items join the
// duplicate-comparison set immediately, so a run cannot accept two
// near-identical candidates. The run always terminates within maxAttempts
// even if every candidate fails.
func (e *Engine) FillToTarget(ctx context.Context, target int, produce ProduceFunc, existing []*model.Item, maxAttempts int) ([]*model.Item, *model.GenerationStats) {
	stats := &model.GenerationStats{}
	accepted := []*model.Item{}

	comparison := make([]*model.Item, len(existing))
	copy(comparison, existing)

	for len(accepted) < target && stats.Attempted < maxAttempts {
		if ctx.Err() != nil {
			e.log.Warn("fill run cancelled", slog.Int("accepted", len(accepted)))
			break
		}
		if stats.Attempted > 0 && e.Pacing > 0 {
			select {
			case <-time.After(e.Pacing):
			case <-ctx.Done():
				return accepted, stats
			}
		}

		stats.Attempted++

		item, err := produce(ctx)
		if err != nil {
			e.log.Warn("candidate generation failed", slog.Any("error", err))
			stats.RecordFailure(nil, []string{helper.NewError("generate candidate", err).Error()})
			continue
		}

		issues := Evaluate(item, comparison, e.MinAnswerWords)
		if len(issues) > 0 {
			e.log.Debug("candidate rejected", slog.Any("issues", issues))
			stats.RecordFailure(item, issues)
			continue
		}

		accepted = append(accepted, item)
		comparison = append(comparison, item)
		stats.RecordPass()
	}

	return accepted, stats
}

// FillBatch works like FillToTarget but issues up to BatchSize generation
// calls concurrently per round. A failed call never cancels its siblings;
// results are evaluated in arrival order, so acceptance order is QA-pass
// order, not issue order.
func (e *Engine) FillBatch(ctx context.Context, target int, produce ProduceFunc, existing []*model.Item, maxAttempts int) ([]*model.Item, *model.GenerationStats) {
	batchSize := e.BatchSize
	if batchSize <= 1 {
		return e.FillToTarget(ctx, target, produce, existing, maxAttempts)
	}

	stats := &model.GenerationStats{}
	accepted := []*model.Item{}

	comparison := make([]*model.Item, len(existing))
	copy(comparison, existing)

	type outcome struct {
		item *model.Item
		err  error
	}

	for len(accepted) < target && stats.Attempted < maxAttempts {
		if ctx.Err() != nil {
			break
		}

		calls := target - len(accepted)
		if calls > batchSize {
			calls = batchSize
		}
		if remaining := maxAttempts - stats.Attempted; calls > remaining {
			calls = remaining
		}

		outcomes := make(chan outcome, calls)
		for i := 0; i < calls; i++ {
			go func() {
				item, err := produce(ctx)
				outcomes <- outcome{item: item, err: err}
			}()
		}

		for i := 0; i < calls; i++ {
			result := <-outcomes
			stats.Attempted++

			if result.err != nil {
				e.log.Warn("candidate generation failed", slog.Any("error", result.err))
				stats.RecordFailure(nil, []string{helper.NewError("generate candidate", result.err).Error()})
				continue
			}

			if len(accepted) >= target {
				// Target reached mid-round; surplus results are dropped, not failed.
				stats.Attempted--
				continue
			}

			issues := Evaluate(result.item, comparison, e.MinAnswerWords)
			if len(issues) > 0 {
				stats.RecordFailure(result.item, issues)
				continue
			}

			accepted = append(accepted, result.item)
			comparison = append(comparison, result.item)
			stats.RecordPass()
		}

		if e.Pacing > 0 && len(accepted) < target && stats.Attempted < maxAttempts {
			select {
			case <-time.After(e.Pacing):
			case <-ctx.Done():
				return accepted, stats
			}
		}
	}

	return accepted, stats
}

// FillBank runs FillToTarget against the configured bank: existing items of
// the same kind and subject seed the duplicate checks, and accepted items
// are persisted. Returns the accepted items and run stats; a bank error
// aborts the run.
func (e *Engine) FillBank(ctx context.Context, kind model.ItemKind, subject string, target int, produce ProduceFunc, maxAttempts int) ([]*model.Item, *model.GenerationStats, error) {
	existing, err := e.bank.ListExisting(ctx, kind, subject)
	if err != nil {
		return nil, nil, helper.NewError("list existing items", err)
	}

	e.log.Info("filling content bank",
		slog.String("kind", string(kind)),
		slog.String("subject", subject),
		slog.Int("target", target),
		slog.Int("existing", len(existing)))

	accepted, stats := e.FillToTarget(ctx, target, produce, existing, maxAttempts)

	for _, item := range accepted {
		err := e.bank.Add(ctx, item)
		if err != nil {
			return accepted, stats, helper.NewError("add item to bank", err)
		}
	}

	e.log.Info("fill run finished",
		slog.Int("accepted", len(accepted)),
		slog.Int("attempted", stats.Attempted),
		slog.Int("failed", stats.Failed))

	return accepted, stats, nil
}
