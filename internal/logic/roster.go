package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/riftlab/archetype-api/internal/models"
)

var rosterJoinMisses = promauto.NewCounter(prometheus.CounterOpts{
	Name: "roster_join_misses_total",
	Help: "Champions in the descriptive source with no merged spell entry",
})

// ChampionsFromDetail builds the immutable Champion set for a run by joining
// the descriptive source onto the merged spell database. The database is
// keyed by canonical IDs, so detail names are canonicalized before the join;
// champions whose display name differs from their canonical ID ("Dr. Mundo",
// "Nunu & Willump") keep their abilities. Misses are counted, never silent.
func ChampionsFromDetail(detail *models.ChampionDetailDoc, db *models.SpellDatabase) map[string]*models.Champion {
	out := make(map[string]*models.Champion, len(db.Spells))
	for name, cd := range detail.Champions {
		id := CanonicalID(name)
		slots := db.Spells[id]
		if slots == nil {
			rosterJoinMisses.Inc()
			continue
		}
		out[id] = &models.Champion{
			ID:        id,
			Name:      cd.Name,
			Tags:      cd.Tags,
			Stats:     cd.Stats.BaseStats,
			Abilities: slots,
		}
	}
	return out
}
