package logic

import (
	"fmt"
	"math"
	"sort"

	"github.com/riftlab/archetype-api/internal/models"
)

// NormalizeTable rewrites every field in models.NormalizedFields to its
// percentile rank across the roster: rank/(N-1), so the minimum maps to 0
// and the maximum to 1. Runs in place after attribute computation; nothing
// downstream may see raw values for those fields. CCScore and the range
// profile are not touched.
func NormalizeTable(table map[string]*models.DerivedAttributes) error {
	if len(table) == 0 {
		return fmt.Errorf("normalize: empty attribute table")
	}

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}

	n := float64(len(ids))
	for _, field := range models.NormalizedFields {
		for _, id := range ids {
			v := field.Get(table[id])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("normalize: %s is not finite for %s", field.Name, id)
			}
		}
		if len(ids) == 1 {
			field.Set(table[ids[0]], 0)
			continue
		}

		// Sort by (value, id) so equal raw values get deterministic ranks
		// regardless of map iteration order.
		sort.Slice(ids, func(i, j int) bool {
			vi, vj := field.Get(table[ids[i]]), field.Get(table[ids[j]])
			if vi != vj {
				return vi < vj
			}
			return ids[i] < ids[j]
		})
		for rank, id := range ids {
			field.Set(table[id], float64(rank)/(n-1))
		}
	}
	return nil
}
