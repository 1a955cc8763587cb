package logic

import (
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

var (
	mergeCoverageGaps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "merge_coverage_gaps_total",
		Help: "Champions present in one source but missing from another, by source pair",
	}, []string{"present_in", "missing_from"})

	mergeDamageRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merge_damage_rejected_total",
		Help: "Extracted damage values discarded as false positives",
	})

	mergeCooldownDefaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merge_cooldown_defaults_total",
		Help: "Spells whose cooldown was missing or sub-second and got the slot default",
	})
)

// Cooldown floors: a merged cooldown below one second means the source had
// no real value, so the slot default stands in.
const (
	defaultCooldownBasic = 10.0
	defaultCooldownUlt   = 100.0
)

// MergeStats summarizes one merge run for logging and the stage metadata.
type MergeStats struct {
	Champions        int `json:"champions"`
	Spells           int `json:"spells"`
	SpellsWithDamage int `json:"spells_with_damage"`
	SpellsWithCC     int `json:"spells_with_cc"`
	DroppedChampions int `json:"dropped_champions"`
	CooldownDefaults int `json:"cooldown_defaults"`
	DamageRejected   int `json:"damage_rejected"`
}

// Merger fuses the numeric damage extract with the descriptive sources into
// one spell database. Field ownership is fixed per source: descriptive wins
// name/description/cooldown/cost/range, numeric wins damage and ratios, and
// a wiki overlay beats the numeric extract for damage when it has the slot.
type Merger struct {
	logger    *zap.SugaredLogger
	extractor *SignalExtractor
}

func NewMerger(logger *zap.SugaredLogger) *Merger {
	return &Merger{logger: logger, extractor: NewSignalExtractor()}
}

// Build merges the sources into a SpellDatabase. The descriptive detail doc
// defines the champion universe: extract-only champions are dropped and
// counted, never guessed at. wiki may be nil.
func (m *Merger) Build(extract *models.DamageExtractDoc, detail *models.ChampionDetailDoc, wiki *models.ChampionDetailDoc) (*models.SpellDatabase, *MergeStats, error) {
	if detail == nil || len(detail.Champions) == 0 {
		return nil, nil, fmt.Errorf("merge: descriptive source is empty")
	}

	stats := &MergeStats{}
	db := &models.SpellDatabase{
		Metadata: models.DocMeta{GeneratedAt: time.Now().UTC(), Source: "merge"},
		Spells:   make(map[string]map[models.SlotKey]*models.Ability, len(detail.Champions)),
	}

	extractByID := make(map[string]*models.DamageExtractChampion)
	if extract != nil {
		for name, ch := range extract.Champions {
			extractByID[CanonicalID(name)] = ch
		}
	}
	wikiByID := make(map[string]*models.ChampionDetail)
	if wiki != nil {
		for name, ch := range wiki.Champions {
			wikiByID[CanonicalID(name)] = ch
		}
	}

	detailIDs := make(map[string]bool, len(detail.Champions))

	names := make([]string, 0, len(detail.Champions))
	for name := range detail.Champions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cd := detail.Champions[name]
		id := CanonicalID(name)
		detailIDs[id] = true

		ext := extractByID[id]
		if ext == nil {
			mergeCoverageGaps.WithLabelValues("detail", "extract").Inc()
			m.logger.Debugw("champion missing from damage extract", "champion", id)
		}
		wk := wikiByID[id]

		slots := make(map[models.SlotKey]*models.Ability, len(models.ActiveSlots))
		for _, slot := range models.ActiveSlots {
			ability := m.mergeSlot(id, slot, cd, ext, wk, stats)
			if ability == nil {
				continue
			}
			slots[slot] = ability
			stats.Spells++
			if ability.DamageState() != models.DamageNone {
				stats.SpellsWithDamage++
			}
			if ability.CCType != "" {
				stats.SpellsWithCC++
			}
		}
		if len(slots) == 0 {
			m.logger.Warnw("champion has no mergeable slots", "champion", id)
			continue
		}
		// Passive carries mobility/sustain text signal but never damage,
		// CC or cooldown; it rides along as description only.
		if det := cd.Abilities[string(models.SlotPassive)]; det != nil {
			slots[models.SlotPassive] = &models.Ability{
				Champion:    id,
				Slot:        models.SlotPassive,
				Name:        det.Name,
				Description: det.Description,
			}
		}
		db.Spells[id] = slots
		stats.Champions++
	}

	// Extract-only champions: counted and logged, never merged.
	for id := range extractByID {
		if !detailIDs[id] {
			stats.DroppedChampions++
			mergeCoverageGaps.WithLabelValues("extract", "detail").Inc()
			m.logger.Warnw("dropping champion absent from descriptive source", "champion", id)
		}
	}

	db.Metadata.Counts = map[string]int{
		"champions":         stats.Champions,
		"spells":            stats.Spells,
		"spells_with_damage": stats.SpellsWithDamage,
		"spells_with_cc":    stats.SpellsWithCC,
	}
	m.logger.Infow("merge complete",
		"champions", stats.Champions,
		"spells", stats.Spells,
		"with_damage", stats.SpellsWithDamage,
		"with_cc", stats.SpellsWithCC,
		"dropped", stats.DroppedChampions,
		"cooldown_defaults", stats.CooldownDefaults,
		"damage_rejected", stats.DamageRejected,
	)
	return db, stats, nil
}

func (m *Merger) mergeSlot(id string, slot models.SlotKey, cd *models.ChampionDetail, ext *models.DamageExtractChampion, wk *models.ChampionDetail, stats *MergeStats) *models.Ability {
	var det *models.AbilityDetail
	if cd.Abilities != nil {
		det = cd.Abilities[string(slot)]
	}
	if det == nil {
		return nil
	}

	a := &models.Ability{
		Champion:    id,
		Slot:        slot,
		Name:        det.Name,
		Description: det.Description,
		Cooldowns:   det.Cooldown.Floats(),
		Cooldown:    det.Cooldown.Last(0),
		Costs:       det.Cost.Floats(),
		Cost:        det.Cost.First(0),
		Ranges:      det.Range.Floats(),
		Range:       det.Range.Last(0),
	}

	if a.Cooldown < 1 {
		if slot == models.SlotR {
			a.Cooldown = defaultCooldownUlt
		} else {
			a.Cooldown = defaultCooldownBasic
		}
		stats.CooldownDefaults++
		mergeCooldownDefaults.Inc()
	}

	// Damage: wiki overlay first, then the numeric extract.
	var wkDet *models.AbilityDetail
	if wk != nil && wk.Abilities != nil {
		wkDet = wk.Abilities[string(slot)]
	}
	switch {
	case wkDet != nil && len(wkDet.BaseDamage) > 0:
		a.BaseDamage = wkDet.BaseDamage.Floats()
		a.ADRatio = wkDet.ADRatio.Float()
		a.APRatio = wkDet.APRatio.Float()
		a.BonusADRatio = wkDet.BonusADRatio.Float()
		a.Source = "wiki"
	case ext != nil && ext.Spells != nil:
		if raw := ext.Spells[string(slot)]; raw != nil {
			a.BaseDamage = raw.BaseDamage.Floats()
			a.ADRatio = raw.ADRatio.Float()
			a.APRatio = raw.APRatio.Float()
			a.BonusADRatio = raw.BonusADRatio.Float()
			a.DamageType = raw.DamageType
			if len(a.BaseDamage) > 0 {
				a.Source = "bin"
			}
		}
	}

	if len(a.BaseDamage) > 0 {
		if ok, reason := m.extractor.FilterDamage(slot, a.BaseDamage, a.Description); !ok {
			m.logger.Debugw("rejecting extracted damage",
				"champion", id, "slot", slot, "reason", reason, "values", a.BaseDamage)
			a.BaseDamage = nil
			a.ADRatio = 0
			a.APRatio = 0
			a.BonusADRatio = 0
			a.Source = ""
			stats.DamageRejected++
			mergeDamageRejected.Inc()
		}
	}

	sig := m.extractor.InferSignal(a.Description)
	a.CCType = sig.CCType
	a.CCDuration = sig.CCDuration
	a.IsHardCC = sig.CCType.IsHard()
	a.Reliability = sig.Reliability
	a.IsSkillshot = sig.IsSkillshot
	a.IsAOE = sig.IsAOE
	a.TargetCount = sig.TargetCount

	return a
}

// ApplyPatches layers manual override documents onto a merged database.
// Each patch entry replaces only the damage fields of its champion+slot;
// applying the same patch again produces the same database. Entries naming
// an unknown champion or slot are logged and skipped.
func (m *Merger) ApplyPatches(db *models.SpellDatabase, patches []*models.PatchDoc) int {
	applied := 0
	for _, doc := range patches {
		for name, slots := range doc.Patches {
			id := CanonicalID(name)
			target := db.Spells[id]
			if target == nil {
				m.logger.Warnw("patch names unknown champion", "patch", doc.Name, "champion", name)
				continue
			}
			for slotKey, raw := range slots {
				ability := target[models.SlotKey(slotKey)]
				if ability == nil {
					m.logger.Warnw("patch names unknown slot",
						"patch", doc.Name, "champion", id, "slot", slotKey)
					continue
				}
				ability.BaseDamage = raw.BaseDamage.Floats()
				ability.ADRatio = raw.ADRatio.Float()
				ability.APRatio = raw.APRatio.Float()
				ability.BonusADRatio = raw.BonusADRatio.Float()
				if raw.DamageType != "" {
					ability.DamageType = raw.DamageType
				}
				ability.Source = "patch:" + doc.Name
				applied++
			}
		}
	}
	if applied > 0 {
		m.logger.Infow("patches applied", "entries", applied, "documents", len(patches))
	}
	return applied
}
