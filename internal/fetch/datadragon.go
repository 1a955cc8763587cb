package fetch

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

const ddragonBase = "https://ddragon.leagueoflegends.com"

// DataDragon fetches the official CDN champion dump: names, tags, base
// stats, and per-slot descriptive text. Full roster coverage, but no
// per-rank damage numbers.
type DataDragon struct {
	client *client
	logger *zap.SugaredLogger
}

func NewDataDragon(logger *zap.SugaredLogger) *DataDragon {
	return &DataDragon{client: newClient(logger), logger: logger}
}

// LatestVersion resolves the current patch version.
func (d *DataDragon) LatestVersion() (string, error) {
	body, err := d.client.get(ddragonBase + "/api/versions.json")
	if err != nil {
		return "", err
	}
	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("parse versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("versions list is empty")
	}
	return versions[0], nil
}

// ddChampionFull mirrors the CDN's championFull.json layout, trimmed to the
// fields the pipeline consumes.
type ddChampionFull struct {
	Data map[string]struct {
		ID   string   `json:"id"`
		Name string   `json:"name"`
		Tags []string `json:"tags"`
		Stats struct {
			HP                   models.FlexFloat `json:"hp"`
			HPPerLevel           models.FlexFloat `json:"hpperlevel"`
			Armor                models.FlexFloat `json:"armor"`
			ArmorPerLevel        models.FlexFloat `json:"armorperlevel"`
			SpellBlock           models.FlexFloat `json:"spellblock"`
			SpellBlockPerLevel   models.FlexFloat `json:"spellblockperlevel"`
			AttackDamage         models.FlexFloat `json:"attackdamage"`
			AttackDamagePerLevel models.FlexFloat `json:"attackdamageperlevel"`
			AttackSpeed          models.FlexFloat `json:"attackspeed"`
			AttackSpeedPerLevel  models.FlexFloat `json:"attackspeedperlevel"`
			MoveSpeed            models.FlexFloat `json:"movespeed"`
			AttackRange          models.FlexFloat `json:"attackrange"`
		} `json:"stats"`
		Spells []struct {
			Name        string            `json:"name"`
			Description string            `json:"description"`
			Cooldown    models.FlexFloats `json:"cooldown"`
			Cost        models.FlexFloats `json:"cost"`
			Range       models.FlexFloats `json:"range"`
		} `json:"spells"`
		Passive struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"passive"`
	} `json:"data"`
}

// ChampionDetails fetches the full champion dump for one version and maps
// it into the pipeline's descriptive document shape.
func (d *DataDragon) ChampionDetails(version string) (*models.ChampionDetailDoc, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/championFull.json", ddragonBase, version)
	body, err := d.client.get(url)
	if err != nil {
		return nil, err
	}
	var full ddChampionFull
	if err := json.Unmarshal(body, &full); err != nil {
		return nil, fmt.Errorf("parse championFull: %w", err)
	}

	doc := &models.ChampionDetailDoc{
		Metadata: models.DocMeta{
			Source:      "ddragon",
			Version:     version,
			GeneratedAt: time.Now().UTC(),
		},
		Champions: make(map[string]*models.ChampionDetail, len(full.Data)),
	}
	for id, ch := range full.Data {
		cd := &models.ChampionDetail{
			Name: ch.Name,
			Tags: ch.Tags,
			Stats: models.ChampionStatsBlock{BaseStats: models.BaseStats{
				HP:                  ch.Stats.HP.Float(),
				HPPerLevel:          ch.Stats.HPPerLevel.Float(),
				Armor:               ch.Stats.Armor.Float(),
				ArmorPerLevel:       ch.Stats.ArmorPerLevel.Float(),
				MagicResist:         ch.Stats.SpellBlock.Float(),
				MagicResistPerLevel: ch.Stats.SpellBlockPerLevel.Float(),
				AttackDamage:        ch.Stats.AttackDamage.Float(),
				AttackDamagePerLvl:  ch.Stats.AttackDamagePerLevel.Float(),
				AttackSpeed:         ch.Stats.AttackSpeed.Float(),
				AttackSpeedPerLvl:   ch.Stats.AttackSpeedPerLevel.Float(),
				MoveSpeed:           ch.Stats.MoveSpeed.Float(),
				AttackRange:         ch.Stats.AttackRange.Float(),
			}},
			Abilities: make(map[string]*models.AbilityDetail, 5),
		}
		for i, spell := range ch.Spells {
			if i >= len(models.ActiveSlots) {
				break
			}
			cd.Abilities[string(models.ActiveSlots[i])] = &models.AbilityDetail{
				Name:        spell.Name,
				Description: spell.Description,
				Cooldown:    spell.Cooldown,
				Cost:        spell.Cost,
				Range:       spell.Range,
			}
		}
		cd.Abilities[string(models.SlotPassive)] = &models.AbilityDetail{
			Name:        ch.Passive.Name,
			Description: ch.Passive.Description,
		}
		doc.Champions[id] = cd
	}
	d.logger.Infow("fetched champion details", "version", version, "champions", len(doc.Champions))
	return doc, nil
}
