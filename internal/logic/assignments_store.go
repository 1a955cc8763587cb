package logic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/riftlab/archetype-api/internal/models"
)

type assignmentStore struct {
	pg PgPool
}

func NewAssignmentStore(pg PgPool) AssignmentStore {
	return &assignmentStore{pg: pg}
}

// Upsert replaces each champion's row with the latest assignment. One row
// per champion: re-running a pipeline for the same roster overwrites in
// place rather than accumulating history.
func (s *assignmentStore) Upsert(ctx context.Context, doc *models.AssignmentDoc) error {
	for id, a := range doc.Assignments {
		scores, err := json.Marshal(a.AllScores)
		if err != nil {
			return fmt.Errorf("marshal scores for %s: %w", id, err)
		}
		_, err = s.pg.Exec(ctx, `
			INSERT INTO archetype_assignments (champion_id, primary_archetype, primary_score, all_scores, flagged, run_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (champion_id) DO UPDATE SET
				primary_archetype = EXCLUDED.primary_archetype,
				primary_score = EXCLUDED.primary_score,
				all_scores = EXCLUDED.all_scores,
				flagged = EXCLUDED.flagged,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()
		`, id, a.PrimaryArchetype, a.PrimaryScore, scores, a.Flagged, doc.Metadata.RunID)
		if err != nil {
			return fmt.Errorf("upsert assignment for %s: %w", id, err)
		}
	}
	return nil
}

// Load reads the full assignment table back into a document.
func (s *assignmentStore) Load(ctx context.Context) (*models.AssignmentDoc, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT champion_id, primary_archetype, primary_score, all_scores, flagged, run_id
		FROM archetype_assignments
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc := &models.AssignmentDoc{Assignments: make(map[string]*models.Assignment)}
	for rows.Next() {
		var (
			id, archetype, runID string
			score                float64
			scores               []byte
			flagged              bool
		)
		if err := rows.Scan(&id, &archetype, &score, &scores, &flagged, &runID); err != nil {
			return nil, err
		}
		a := &models.Assignment{
			PrimaryArchetype: archetype,
			PrimaryScore:     score,
			Flagged:          flagged,
		}
		if len(scores) > 0 {
			if err := json.Unmarshal(scores, &a.AllScores); err != nil {
				return nil, fmt.Errorf("decode scores for %s: %w", id, err)
			}
		}
		doc.Assignments[id] = a
		doc.Metadata.RunID = runID
	}
	return doc, rows.Err()
}
