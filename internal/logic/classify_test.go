package logic

import (
	"testing"

	"github.com/riftlab/archetype-api/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestFuzzyScore(t *testing.T) {
	minCrit := models.Criterion{Min: fp(0.6), FuzzyRange: 0.2}
	tests := []struct {
		v    float64
		want float64
	}{
		{0.8, 1},
		{0.6, 1},
		{0.5, 0.5},
		{0.4, 0},
		{0.3, 0},
	}
	for _, tt := range tests {
		approx(t, "min fuzzyScore", fuzzyScore(tt.v, minCrit), tt.want)
	}

	maxCrit := models.Criterion{Max: fp(0.3), FuzzyRange: 0.2}
	approx(t, "max fuzzyScore(0.4)", fuzzyScore(0.4, maxCrit), 0.5)
	approx(t, "max fuzzyScore(0.2)", fuzzyScore(0.2, maxCrit), 1)

	hard := models.Criterion{Min: fp(0.6)}
	if got := fuzzyScore(0.599, hard); got != 0 {
		t.Errorf("hard edge fuzzyScore(0.599) = %v, want 0", got)
	}
}

func testLibrary() *models.ArchetypeLibrary {
	return &models.ArchetypeLibrary{
		Archetypes: map[string]models.ArchetypeDefinition{
			"artillery_mage": {
				Requirements: map[string]models.Criterion{
					"burst_index": {Min: fp(0.4), FuzzyRange: 0.2},
				},
			},
			"marksman": {
				Requirements: map[string]models.Criterion{
					"burst_index": {Min: fp(0.4), FuzzyRange: 0.2},
				},
			},
			"engage_tank": {
				Requirements: map[string]models.Criterion{
					"survivability_mid": {Min: fp(0.7), FuzzyRange: 0.1},
					"cc_score":          {Min: fp(0.4), FuzzyRange: 0.15},
				},
			},
		},
	}
}

func TestAssignMarksmanTieBreak(t *testing.T) {
	c := NewClassifier(testLogger(), testLibrary(), DefaultClassifierConfig)

	// Both archetypes score 1.0. High normalized DPS: marksman wins.
	highDPS := &models.DerivedAttributes{BurstIndex: 0.9, SustainedDPS: 0.8}
	a, err := c.Assign("HighDPS", highDPS)
	if err != nil {
		t.Fatal(err)
	}
	if a.PrimaryArchetype != "marksman" {
		t.Errorf("primary = %q, want marksman (tie rule)", a.PrimaryArchetype)
	}
	if a.PrimaryScore != 1 {
		t.Errorf("score = %v, want 1", a.PrimaryScore)
	}

	// Same tie with low DPS: lexicographically first name wins.
	lowDPS := &models.DerivedAttributes{BurstIndex: 0.9, SustainedDPS: 0.5}
	a, err = c.Assign("LowDPS", lowDPS)
	if err != nil {
		t.Fatal(err)
	}
	if a.PrimaryArchetype != "artillery_mage" {
		t.Errorf("primary = %q, want artillery_mage (first name)", a.PrimaryArchetype)
	}
}

func TestAssignFlagsZeroScores(t *testing.T) {
	c := NewClassifier(testLogger(), testLibrary(), DefaultClassifierConfig)

	attrs := &models.DerivedAttributes{BurstIndex: 0.1, SustainedDPS: 0.1}
	a, err := c.Assign("NoFit", attrs)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Flagged {
		t.Error("zero-score assignment must be flagged")
	}
	if a.PrimaryArchetype == "" {
		t.Error("flagged champion still gets a primary archetype")
	}
	if len(a.AllScores) != 3 {
		t.Errorf("AllScores has %d entries, want 3", len(a.AllScores))
	}
}

func TestScoreArchetypeExclusion(t *testing.T) {
	c := NewClassifier(testLogger(), testLibrary(), DefaultClassifierConfig)
	def := models.ArchetypeDefinition{
		Requirements: map[string]models.Criterion{
			"burst_index": {Min: fp(0.4), FuzzyRange: 0.2},
		},
		Exclusions: map[string]models.Criterion{
			"auto_attack": {Min: fp(0), Max: fp(200)},
		},
	}

	// Inside the zone the exclusion scores 0 into the mean alongside the
	// requirement, not a hard veto: (1*1 + 0*1) / 2.
	melee := &models.DerivedAttributes{
		BurstIndex:   0.9,
		RangeProfile: models.RangeProfile{AutoAttack: 125},
	}
	score, err := c.scoreArchetype(melee, def)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "score inside exclusion zone", score, 0.5)

	ranged := &models.DerivedAttributes{
		BurstIndex:   0.9,
		RangeProfile: models.RangeProfile{AutoAttack: 550},
	}
	score, err = c.scoreArchetype(ranged, def)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("score = %v, want 1 (outside exclusion zone)", score)
	}
}

func TestScoreArchetypeCategoricalAndWeights(t *testing.T) {
	c := NewClassifier(testLogger(), testLibrary(), DefaultClassifierConfig)
	def := models.ArchetypeDefinition{
		Requirements: map[string]models.Criterion{
			"damage_profile": {Allowed: []string{"physical"}, Weight: 1},
			"burst_index":    {Min: fp(0.4), FuzzyRange: 0.2, Weight: 3},
		},
	}

	attrs := &models.DerivedAttributes{
		BurstIndex:    0.9,
		DamageProfile: models.ProfileMagic,
	}
	score, err := c.scoreArchetype(attrs, def)
	if err != nil {
		t.Fatal(err)
	}
	// (0*1 + 1*3) / 4
	approx(t, "weighted score", score, 0.75)

	// Archetype weight above 1 clamps at 1.
	boosted := def
	boosted.Weight = 2
	attrs.DamageProfile = models.ProfilePhysical
	score, err = c.scoreArchetype(attrs, boosted)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("score = %v, want clamp at 1", score)
	}
}

func TestAssignAllCounts(t *testing.T) {
	c := NewClassifier(testLogger(), testLibrary(), DefaultClassifierConfig)
	attrs := map[string]*models.DerivedAttributes{
		"Fit":   {BurstIndex: 0.9, SustainedDPS: 0.9},
		"NoFit": {BurstIndex: 0.0},
	}
	doc, err := c.AssignAll(attrs, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(doc.Assignments))
	}
	if doc.Metadata.Counts["flagged"] != 1 {
		t.Errorf("flagged count = %d, want 1", doc.Metadata.Counts["flagged"])
	}
	if doc.Metadata.RunID != "run-1" {
		t.Errorf("run id = %q", doc.Metadata.RunID)
	}
}
