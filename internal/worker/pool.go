// Package worker implements the parallel attribute computation pool.
// Per-champion computation is independent, so the pipeline fans the roster
// out over a bounded worker group and collects results under a mutex. The
// pool must produce byte-identical results to the serial path.
package worker

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/riftlab/archetype-api/internal/models"
)

var (
	championsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attribute_champions_processed_total",
		Help: "Total number of champions run through attribute computation",
	})

	computeFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attribute_compute_failed_total",
		Help: "Total number of champions whose attribute computation failed",
	})
)

// Engine derives one champion's attributes. Implementations must be safe
// for concurrent use.
type Engine interface {
	Compute(ch *models.Champion) *models.DerivedAttributes
}

// Pool fans attribute computation out over a fixed number of goroutines.
type Pool struct {
	engine  Engine
	workers int
	logger  *zap.SugaredLogger
}

func NewPool(engine Engine, workers int, logger *zap.SugaredLogger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{engine: engine, workers: workers, logger: logger}
}

// ComputeAll derives attributes for every champion in parallel. Results are
// identical to calling the engine serially; only the wall-clock differs.
func (p *Pool) ComputeAll(ctx context.Context, champs map[string]*models.Champion) (map[string]*models.DerivedAttributes, error) {
	out := make(map[string]*models.DerivedAttributes, len(champs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for id, ch := range champs {
		id, ch := id, ch
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			attrs := p.engine.Compute(ch)
			championsProcessed.Inc()

			mu.Lock()
			out[id] = attrs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		computeFailed.Inc()
		return nil, err
	}
	p.logger.Infow("attribute computation complete", "champions", len(out), "workers", p.workers)
	return out, nil
}
