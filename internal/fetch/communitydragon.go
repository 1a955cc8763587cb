package fetch

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

const cdragonBase = "https://raw.communitydragon.org"

// CommunityDragon fetches the raw numeric extract produced from the game's
// .bin files. Authoritative for per-rank damage and scaling ratios, but
// coverage is incomplete and values occasionally arrive as strings.
type CommunityDragon struct {
	client *client
	logger *zap.SugaredLogger
}

func NewCommunityDragon(logger *zap.SugaredLogger) *CommunityDragon {
	return &CommunityDragon{client: newClient(logger), logger: logger}
}

// DamageExtract fetches the damage extract for one patch line
// (e.g. "latest" or "14.23").
func (c *CommunityDragon) DamageExtract(patch string) (*models.DamageExtractDoc, error) {
	url := fmt.Sprintf("%s/%s/plugins/rcp-be-lol-game-data/global/default/v1/champion-spell-data.json", cdragonBase, patch)
	body, err := c.client.get(url)
	if err != nil {
		return nil, err
	}
	var doc models.DamageExtractDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse damage extract: %w", err)
	}
	doc.Metadata.Source = "cdragon"
	doc.Metadata.Version = patch
	doc.Metadata.GeneratedAt = time.Now().UTC()
	c.logger.Infow("fetched damage extract", "patch", patch, "champions", len(doc.Champions))
	return &doc, nil
}
