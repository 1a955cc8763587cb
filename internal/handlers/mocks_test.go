package handlers

import (
	"context"

	"github.com/riftlab/archetype-api/internal/models"
)

type mockAssignmentStore struct {
	doc *models.AssignmentDoc
	err error
}

func (m *mockAssignmentStore) Upsert(ctx context.Context, doc *models.AssignmentDoc) error {
	return m.err
}

func (m *mockAssignmentStore) Load(ctx context.Context) (*models.AssignmentDoc, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

type mockRelationshipService struct {
	stats []models.ArchetypePairStat
	err   error

	// captured from the last call
	minGames uint64
}

func (m *mockRelationshipService) ArchetypePairWinRates(ctx context.Context, assignments *models.AssignmentDoc, minGames uint64) ([]models.ArchetypePairStat, error) {
	m.minGames = minGames
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}
