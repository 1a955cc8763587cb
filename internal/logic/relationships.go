package logic

import (
	"context"
	"sort"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/riftlab/archetype-api/internal/models"
)

type relationshipService struct {
	ch driver.Conn
}

func NewRelationshipService(ch driver.Conn) RelationshipService {
	return &relationshipService{ch: ch}
}

// ArchetypePairWinRates aggregates same-team champion pairs from match
// history and folds them to archetype pairs using the assignment document
// as the join key. Pairs where either champion has no assignment are
// skipped; pairs below minGames are dropped after folding.
func (s *relationshipService) ArchetypePairWinRates(ctx context.Context, assignments *models.AssignmentDoc, minGames uint64) ([]models.ArchetypePairStat, error) {
	query := `
		SELECT
			a.champion_id AS champ_a,
			b.champion_id AS champ_b,
			count() AS games,
			countIf(a.win = 1) AS wins
		FROM match_participants a
		INNER JOIN match_participants b
			ON a.match_id = b.match_id AND a.team_id = b.team_id
		WHERE a.champion_id < b.champion_id
		GROUP BY champ_a, champ_b
	`
	rows, err := s.ch.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type agg struct {
		games uint64
		wins  uint64
	}
	pairs := make(map[[2]string]*agg)

	for rows.Next() {
		var champA, champB string
		var games, wins uint64
		if err := rows.Scan(&champA, &champB, &games, &wins); err != nil {
			continue
		}
		aa := assignments.Assignments[champA]
		ab := assignments.Assignments[champB]
		if aa == nil || ab == nil {
			continue
		}
		key := [2]string{aa.PrimaryArchetype, ab.PrimaryArchetype}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		p := pairs[key]
		if p == nil {
			p = &agg{}
			pairs[key] = p
		}
		p.games += games
		p.wins += wins
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.ArchetypePairStat, 0, len(pairs))
	for key, p := range pairs {
		if p.games < minGames {
			continue
		}
		out = append(out, models.ArchetypePairStat{
			ArchetypeA: key[0],
			ArchetypeB: key[1],
			Games:      p.games,
			Wins:       p.wins,
			WinRate:    float64(p.wins) / float64(p.games),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ArchetypeA != out[j].ArchetypeA {
			return out[i].ArchetypeA < out[j].ArchetypeA
		}
		return out[i].ArchetypeB < out[j].ArchetypeB
	})
	return out, nil
}
