package vision

import (
	"context"
	"errors"
	"log/slog"

	"voltid/pkg/platform/circuit"
)

// ErrModelUnavailable is returned without calling the model while the
// breaker is open.
var ErrModelUnavailable = errors.New("vision model temporarily unavailable")

type Model interface {
	TextExtractor
	ObjectDetector
}

// Guarded fails fast after repeated model errors instead of queueing every
// KYC submission behind a slow or failing provider.
type Guarded struct {
	model   Model
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(model Model, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{model: model, breaker: breaker, logger: logger}
}

func (g *Guarded) ExtractDocumentText(ctx context.Context, key string) ([]TextBlock, error) {
	if !g.breaker.Allow() {
		return nil, ErrModelUnavailable
	}
	blocks, err := g.model.ExtractDocumentText(ctx, key)
	g.record(ctx, err)
	return blocks, err
}

func (g *Guarded) DetectLabels(ctx context.Context, key string, candidates []string) ([]Label, error) {
	if !g.breaker.Allow() {
		return nil, ErrModelUnavailable
	}
	labels, err := g.model.DetectLabels(ctx, key, candidates)
	g.record(ctx, err)
	return labels, err
}

func (g *Guarded) record(ctx context.Context, err error) {
	// A cancelled request says nothing about the provider.
	if errors.Is(err, context.Canceled) {
		return
	}
	if err == nil {
		if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
			g.logger.InfoContext(ctx, "vision circuit closed", "breaker", g.breaker.Name())
		}
		return
	}
	if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
		g.logger.WarnContext(ctx, "vision circuit opened", "breaker", g.breaker.Name(), "error", err)
	}
}
