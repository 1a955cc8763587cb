package logic

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

// ClassifierConfig carries the tunable classification constants.
type ClassifierConfig struct {
	// MarksmanTieScore is the minimum archetype score at which the
	// marksman preference rule may fire.
	MarksmanTieScore float64
	// MarksmanTieDPSPercentile is the normalized sustained_dps a champion
	// must exceed for marksman to win a tie.
	MarksmanTieDPSPercentile float64
}

// DefaultClassifierConfig matches production tuning.
var DefaultClassifierConfig = ClassifierConfig{
	MarksmanTieScore:         0.95,
	MarksmanTieDPSPercentile: 0.75,
}

const scoreEpsilon = 1e-9

// Classifier scores champions against the archetype library and picks a
// primary archetype for each. Every champion gets exactly one primary, even
// when nothing fits; those are flagged, never dropped.
type Classifier struct {
	logger *zap.SugaredLogger
	lib    *models.ArchetypeLibrary
	cfg    ClassifierConfig
}

func NewClassifier(logger *zap.SugaredLogger, lib *models.ArchetypeLibrary, cfg ClassifierConfig) *Classifier {
	return &Classifier{logger: logger, lib: lib, cfg: cfg}
}

// fuzzyScore evaluates a numeric criterion: 1.0 inside [min,max], a linear
// ramp of width FuzzyRange outside, 0 beyond the ramp.
func fuzzyScore(v float64, c models.Criterion) float64 {
	if c.Min != nil && v < *c.Min {
		if c.FuzzyRange <= 0 {
			return 0
		}
		return math.Max(0, 1-(*c.Min-v)/c.FuzzyRange)
	}
	if c.Max != nil && v > *c.Max {
		if c.FuzzyRange <= 0 {
			return 0
		}
		return math.Max(0, 1-(v-*c.Max)/c.FuzzyRange)
	}
	return 1
}

// categoricalScore evaluates an Allowed-set criterion.
func categoricalScore(v string, c models.Criterion) float64 {
	for _, a := range c.Allowed {
		if a == v {
			return 1
		}
	}
	return 0
}

// scoreArchetype computes one champion's membership in one archetype:
// the weighted mean of every requirement, range-constraint and exclusion
// score, scaled by the archetype weight and clamped to 1. An exclusion is
// a binary criterion inside the mean: 0 in the disqualifying zone, 1
// outside it.
func (c *Classifier) scoreArchetype(attrs *models.DerivedAttributes, def models.ArchetypeDefinition) (float64, error) {
	var sum, weight float64

	for attr, crit := range def.Exclusions {
		v, ok := attrs.RangeValue(attr)
		if !ok {
			if v, ok = attrs.Numeric(attr); !ok {
				return 0, fmt.Errorf("exclusion names unknown attribute %q", attr)
			}
		}
		lo, hi := math.Inf(-1), math.Inf(1)
		if crit.Min != nil {
			lo = *crit.Min
		}
		if crit.Max != nil {
			hi = *crit.Max
		}
		w := crit.EffectiveWeight()
		if v < lo || v > hi {
			sum += w
		}
		weight += w
	}
	for attr, crit := range def.Requirements {
		w := crit.EffectiveWeight()
		if len(crit.Allowed) > 0 {
			if attr != "damage_profile" {
				return 0, fmt.Errorf("categorical criterion on non-categorical attribute %q", attr)
			}
			sum += w * categoricalScore(string(attrs.DamageProfile), crit)
			weight += w
			continue
		}
		v, ok := attrs.Numeric(attr)
		if !ok {
			return 0, fmt.Errorf("requirement names unknown attribute %q", attr)
		}
		sum += w * fuzzyScore(v, crit)
		weight += w
	}
	for attr, crit := range def.RangeConstraints {
		v, ok := attrs.RangeValue(attr)
		if !ok {
			return 0, fmt.Errorf("range constraint names unknown attribute %q", attr)
		}
		w := crit.EffectiveWeight()
		sum += w * fuzzyScore(v, crit)
		weight += w
	}
	if weight == 0 {
		return 0, nil
	}

	score := sum / weight
	if def.Weight > 0 {
		score *= def.Weight
	}
	return math.Min(1, score), nil
}

// Assign classifies one champion. Ties within epsilon resolve to the
// lexicographically first archetype name, except that marksman wins a tie
// it participates in when the champion's score clears MarksmanTieScore and
// its normalized sustained_dps clears MarksmanTieDPSPercentile.
func (c *Classifier) Assign(id string, attrs *models.DerivedAttributes) (*models.Assignment, error) {
	all := make(map[string]float64, len(c.lib.Archetypes))
	best := ""
	bestScore := -1.0

	// Names() is sorted, so the first archetype reaching the max wins ties.
	for _, name := range c.lib.Names() {
		score, err := c.scoreArchetype(attrs, c.lib.Archetypes[name])
		if err != nil {
			return nil, fmt.Errorf("classify %s against %s: %w", id, name, err)
		}
		all[name] = score
		if score > bestScore+scoreEpsilon {
			best = name
			bestScore = score
		}
	}

	if mk, ok := all["marksman"]; ok && best != "marksman" {
		if math.Abs(mk-bestScore) <= scoreEpsilon &&
			mk >= c.cfg.MarksmanTieScore &&
			attrs.SustainedDPS > c.cfg.MarksmanTieDPSPercentile {
			best = "marksman"
			bestScore = mk
		}
	}

	a := &models.Assignment{
		PrimaryArchetype: best,
		PrimaryScore:     bestScore,
		AllScores:        all,
	}
	if bestScore <= 0 {
		a.Flagged = true
		c.logger.Warnw("champion fits no archetype", "champion", id)
	}
	return a, nil
}

// AssignAll classifies the whole roster into an assignment document.
func (c *Classifier) AssignAll(attrs map[string]*models.DerivedAttributes, runID string) (*models.AssignmentDoc, error) {
	doc := &models.AssignmentDoc{
		Metadata: models.DocMeta{
			RunID:       runID,
			Source:      "classifier",
			GeneratedAt: time.Now().UTC(),
		},
		Assignments: make(map[string]*models.Assignment, len(attrs)),
	}
	flagged := 0
	for id, a := range attrs {
		assignment, err := c.Assign(id, a)
		if err != nil {
			return nil, err
		}
		doc.Assignments[id] = assignment
		if assignment.Flagged {
			flagged++
		}
	}
	doc.Metadata.Counts = map[string]int{
		"champions": len(doc.Assignments),
		"flagged":   flagged,
	}
	c.logger.Infow("classification complete", "champions", len(doc.Assignments), "flagged", flagged)
	return doc, nil
}
