package worker

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

// statEngine derives a deterministic value from the champion so parallel
// and serial runs can be compared exactly.
type statEngine struct{}

func (statEngine) Compute(ch *models.Champion) *models.DerivedAttributes {
	return &models.DerivedAttributes{
		SustainedDPS: ch.Stats.AttackDamage * 2,
		CCScore:      ch.Stats.HP / 100,
	}
}

func rosterOf(n int) map[string]*models.Champion {
	out := make(map[string]*models.Champion, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("Champ%03d", i)
		out[id] = &models.Champion{
			ID:    id,
			Stats: models.BaseStats{AttackDamage: float64(50 + i), HP: float64(500 + 10*i)},
		}
	}
	return out
}

func TestPoolMatchesSerial(t *testing.T) {
	logger := zap.NewNop().Sugar()
	engine := statEngine{}
	roster := rosterOf(50)

	serial := make(map[string]*models.DerivedAttributes, len(roster))
	for id, ch := range roster {
		serial[id] = engine.Compute(ch)
	}

	for _, workers := range []int{1, 4, 16} {
		pool := NewPool(engine, workers, logger)
		parallel, err := pool.ComputeAll(context.Background(), roster)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !reflect.DeepEqual(serial, parallel) {
			t.Errorf("workers=%d: parallel result differs from serial", workers)
		}
	}
}

func TestPoolEmptyRoster(t *testing.T) {
	pool := NewPool(statEngine{}, 4, zap.NewNop().Sugar())
	out, err := pool.ComputeAll(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("got %d results, want 0", len(out))
	}
}

func TestPoolCanceledContext(t *testing.T) {
	pool := NewPool(statEngine{}, 2, zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pool.ComputeAll(ctx, rosterOf(100)); err == nil {
		t.Error("expected error from canceled context")
	}
}
