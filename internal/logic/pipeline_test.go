package logic

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/riftlab/archetype-api/internal/models"
)

// Three-champion roster exercising the full flow: merge, attribute
// computation, normalization, classification. Ranger is a long-range
// sustained auto attacker, Bulwark a tanky crowd-control engine, Shade a
// mobile long-cooldown burster.
func fixtureDetailDoc() *models.ChampionDetailDoc {
	return &models.ChampionDetailDoc{
		Champions: map[string]*models.ChampionDetail{
			"Ranger": {
				Name: "Ranger",
				Tags: []string{"Marksman"},
				Stats: models.ChampionStatsBlock{BaseStats: models.BaseStats{
					HP: 550, HPPerLevel: 85,
					Armor: 26, ArmorPerLevel: 3.5,
					MagicResist: 30, MagicResistPerLevel: 1.3,
					AttackDamage: 62, AttackDamagePerLvl: 3.2,
					AttackSpeed: 0.68, AttackSpeedPerLvl: 3.5,
					MoveSpeed: 330, AttackRange: 550,
				}},
				Abilities: map[string]*models.AbilityDetail{
					"Q": {
						Name:        "Steady Volley",
						Description: "Empowers her next shots to deal extra physical damage.",
						Cooldown:    models.FlexFloats{11.75, 10.75, 9.75, 8.75, 7.75},
						Cost:        models.FlexFloats{30},
						Range:       models.FlexFloats{550},
					},
					"W": {
						Name:        "Piercing Bolt",
						Description: "Fires a piercing bolt that deals physical damage to enemies hit.",
						Cooldown:    models.FlexFloats{15.75, 14.75, 13.75, 12.75, 11.75},
						Cost:        models.FlexFloats{50},
						Range:       models.FlexFloats{1100},
					},
					"E": {
						Name:        "Hunter's Pace",
						Description: "Gains bonus movement speed briefly.",
						Cooldown:    models.FlexFloats{17.75},
						Cost:        models.FlexFloats{40},
						Range:       models.FlexFloats{0},
					},
					"R": {
						Name:        "Twin Piercers",
						Description: "Fires two massive bolts that deal heavy physical damage.",
						Cooldown:    models.FlexFloats{119.75, 109.75, 99.75},
						Cost:        models.FlexFloats{100},
						Range:       models.FlexFloats{1400},
					},
				},
			},
			"Bulwark": {
				Name: "Bulwark",
				Tags: []string{"Tank"},
				Stats: models.ChampionStatsBlock{BaseStats: models.BaseStats{
					HP: 680, HPPerLevel: 115,
					Armor: 42, ArmorPerLevel: 5.5,
					MagicResist: 32, MagicResistPerLevel: 2.1,
					AttackDamage: 64, AttackDamagePerLvl: 3,
					AttackSpeed: 0.62, AttackSpeedPerLvl: 2,
					MoveSpeed: 340, AttackRange: 175,
				}},
				Abilities: map[string]*models.AbilityDetail{
					"Q": {
						Name:        "Challenge",
						Description: "Taunts the target, forcing it to attack him for 1.5 seconds.",
						Cooldown:    models.FlexFloats{9.75, 8.75, 7.75},
						Cost:        models.FlexFloats{40},
						Range:       models.FlexFloats{350},
					},
					"W": {
						Name:        "Shockwave",
						Description: "Slams down, stunning nearby enemies for 1.25 seconds.",
						Cooldown:    models.FlexFloats{13.75, 12.75, 11.75},
						Cost:        models.FlexFloats{60},
						Range:       models.FlexFloats{300},
					},
					"E": {
						Name:        "Bastion",
						Description: "Shields himself, blocking incoming damage.",
						Cooldown:    models.FlexFloats{13.75},
						Cost:        models.FlexFloats{50},
						Range:       models.FlexFloats{0},
					},
					"R": {
						Name:        "Upheaval",
						Description: "Slams the air, knocking nearby enemies up and dealing magic damage.",
						Cooldown:    models.FlexFloats{119.75, 109.75, 99.75},
						Cost:        models.FlexFloats{100},
						Range:       models.FlexFloats{400},
					},
				},
			},
			"Shade": {
				Name: "Shade",
				Tags: []string{"Assassin"},
				Stats: models.ChampionStatsBlock{BaseStats: models.BaseStats{
					HP: 590, HPPerLevel: 85,
					Armor: 23, ArmorPerLevel: 3.5,
					MagicResist: 32, MagicResistPerLevel: 1.3,
					AttackDamage: 60, AttackDamagePerLvl: 3,
					AttackSpeed: 0.65, AttackSpeedPerLvl: 2,
					MoveSpeed: 345, AttackRange: 125,
				}},
				Abilities: map[string]*models.AbilityDetail{
					"Q": {
						Name:        "Night Razor",
						Description: "Deals magic damage to the target.",
						Cooldown:    models.FlexFloats{13.75, 12.75, 11.75},
						Cost:        models.FlexFloats{50},
						Range:       models.FlexFloats{600},
					},
					"W": {
						Name:        "Umbral Step",
						Description: "Blinks behind the target and deals magic damage.",
						Cooldown:    models.FlexFloats{17.75, 16.75, 15.75},
						Cost:        models.FlexFloats{60},
						Range:       models.FlexFloats{600},
					},
					"E": {
						Name:        "Shadow Rush",
						Description: "Dashes through the target, dealing magic damage.",
						Cooldown:    models.FlexFloats{15.75, 14.75, 13.75},
						Cost:        models.FlexFloats{50},
						Range:       models.FlexFloats{450},
					},
					"R": {
						Name:        "Final Hour",
						Description: "Deals massive magic damage to the target if it is isolated.",
						Cooldown:    models.FlexFloats{99.75, 89.75, 79.75},
						Cost:        models.FlexFloats{0},
						Range:       models.FlexFloats{700},
					},
				},
			},
		},
	}
}

func fixtureExtractDoc() *models.DamageExtractDoc {
	return &models.DamageExtractDoc{
		Champions: map[string]*models.DamageExtractChampion{
			"Ranger": {Spells: map[string]*models.RawSpell{
				"Q": {BaseDamage: models.FlexFloats{30, 50, 70, 90, 110}, ADRatio: 0.5, DamageType: "physical"},
				"W": {BaseDamage: models.FlexFloats{80, 120, 160, 200, 240}, ADRatio: 0.8, DamageType: "physical"},
				"R": {BaseDamage: models.FlexFloats{250, 400, 550}, ADRatio: 1.0, DamageType: "physical"},
			}},
			"Bulwark": {Spells: map[string]*models.RawSpell{
				"R": {BaseDamage: models.FlexFloats{150, 250, 350}, APRatio: 0.5, DamageType: "magic"},
			}},
			"Shade": {Spells: map[string]*models.RawSpell{
				"Q": {BaseDamage: models.FlexFloats{80, 120, 160, 200, 240}, APRatio: 0.7, DamageType: "magic"},
				"W": {BaseDamage: models.FlexFloats{70, 110, 150, 190, 230}, APRatio: 0.6, DamageType: "magic"},
				"E": {BaseDamage: models.FlexFloats{60, 100, 140, 180, 220}, APRatio: 0.5, DamageType: "magic"},
				"R": {BaseDamage: models.FlexFloats{250, 375, 500}, APRatio: 1.0, DamageType: "magic"},
			}},
		},
	}
}

func fixtureLibrary() *models.ArchetypeLibrary {
	return &models.ArchetypeLibrary{
		Archetypes: map[string]models.ArchetypeDefinition{
			"marksman": {
				Requirements: map[string]models.Criterion{
					"sustained_dps":  {Min: fp(0.6), FuzzyRange: 0.2},
					"cc_score":       {Max: fp(0.15), FuzzyRange: 0.1},
					"mobility_score": {Max: fp(0.5), FuzzyRange: 0.5},
					"damage_profile": {Allowed: []string{"physical"}},
					"burst_index":    {Max: fp(0.7), FuzzyRange: 0.3},
				},
				RangeConstraints: map[string]models.Criterion{
					"auto_attack": {Min: fp(500), FuzzyRange: 100},
				},
				Exclusions: map[string]models.Criterion{
					"auto_attack": {Min: fp(0), Max: fp(200)},
				},
			},
			"engage_tank": {
				Requirements: map[string]models.Criterion{
					"survivability_mid": {Min: fp(0.6), FuzzyRange: 0.2},
					"cc_score":          {Min: fp(0.35), FuzzyRange: 0.15},
				},
				RangeConstraints: map[string]models.Criterion{
					"auto_attack": {Max: fp(200), FuzzyRange: 50},
				},
			},
			"burst_assassin": {
				Requirements: map[string]models.Criterion{
					"burst_index":    {Min: fp(0.6), FuzzyRange: 0.2},
					"mobility_score": {Min: fp(0.6), FuzzyRange: 0.2},
					"cc_score":       {Max: fp(0.3), FuzzyRange: 0.2},
					"sustained_dps":  {Max: fp(0.7), FuzzyRange: 0.3},
				},
				RangeConstraints: map[string]models.Criterion{
					"auto_attack": {Max: fp(200), FuzzyRange: 50},
				},
			},
		},
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	m := NewMerger(testLogger())
	db, _, err := m.Build(fixtureExtractDoc(), fixtureDetailDoc(), nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	detail := fixtureDetailDoc()
	champs := ChampionsFromDetail(detail, db)
	if len(champs) != 3 {
		t.Fatalf("champions = %d, want 3", len(champs))
	}

	engine := NewAttributeEngine(testLogger(), DefaultReference)
	attrs := engine.ComputeAll(champs)

	// Raw orderings the roster was designed around.
	if !(attrs["Ranger"].SustainedDPS > attrs["Shade"].SustainedDPS &&
		attrs["Shade"].SustainedDPS > attrs["Bulwark"].SustainedDPS) {
		t.Fatalf("sustained DPS ordering wrong: R=%v S=%v B=%v",
			attrs["Ranger"].SustainedDPS, attrs["Shade"].SustainedDPS, attrs["Bulwark"].SustainedDPS)
	}
	if !(attrs["Shade"].BurstIndex > attrs["Ranger"].BurstIndex &&
		attrs["Ranger"].BurstIndex > attrs["Bulwark"].BurstIndex) {
		t.Fatalf("burst index ordering wrong: S=%v R=%v B=%v",
			attrs["Shade"].BurstIndex, attrs["Ranger"].BurstIndex, attrs["Bulwark"].BurstIndex)
	}
	if attrs["Bulwark"].CCScore < 0.35 || attrs["Bulwark"].CCScore > 0.5 {
		t.Fatalf("Bulwark cc score = %v, want roughly 0.42", attrs["Bulwark"].CCScore)
	}
	if attrs["Ranger"].CCScore != 0 || attrs["Shade"].CCScore != 0 {
		t.Fatalf("Ranger/Shade cc must be 0: %v %v", attrs["Ranger"].CCScore, attrs["Shade"].CCScore)
	}

	if err := NormalizeTable(attrs); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	// N=3 percentiles are exactly {0, 0.5, 1}.
	approx(t, "Ranger dps pct", attrs["Ranger"].SustainedDPS, 1)
	approx(t, "Shade dps pct", attrs["Shade"].SustainedDPS, 0.5)
	approx(t, "Bulwark dps pct", attrs["Bulwark"].SustainedDPS, 0)
	approx(t, "Shade mobility pct", attrs["Shade"].MobilityScore, 1)
	approx(t, "Bulwark surv pct", attrs["Bulwark"].SurvivabilityMid, 1)

	c := NewClassifier(testLogger(), fixtureLibrary(), DefaultClassifierConfig)
	doc, err := c.AssignAll(attrs, "fixture")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	expect := map[string]string{
		"Ranger":  "marksman",
		"Bulwark": "engage_tank",
		"Shade":   "burst_assassin",
	}
	for id, want := range expect {
		a := doc.Assignments[id]
		if a == nil {
			t.Fatalf("%s missing assignment", id)
		}
		if a.PrimaryArchetype != want {
			t.Errorf("%s primary = %q (score %v, all %v), want %q",
				id, a.PrimaryArchetype, a.PrimaryScore, a.AllScores, want)
		}
		approx(t, id+" primary score", a.PrimaryScore, 1)
		if a.Flagged {
			t.Errorf("%s must not be flagged", id)
		}
		for name, score := range a.AllScores {
			if name != want && score >= a.PrimaryScore {
				t.Errorf("%s scores %v on %s, not below primary", id, score, name)
			}
		}
	}
}

func TestAttributesRoundTrip(t *testing.T) {
	m := NewMerger(testLogger())
	db, _, err := m.Build(fixtureExtractDoc(), fixtureDetailDoc(), nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	detail := fixtureDetailDoc()
	attrs := NewAttributeEngine(testLogger(), DefaultReference).ComputeAll(ChampionsFromDetail(detail, db))
	if err := NormalizeTable(attrs); err != nil {
		t.Fatal(err)
	}
	for _, a := range attrs {
		a.Round()
	}

	doc := &models.AttributesDoc{Champions: attrs}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var back models.AttributesDoc
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	// Rounded values survive serialization bit-exactly.
	if !reflect.DeepEqual(doc.Champions, back.Champions) {
		t.Error("attribute document did not round-trip")
	}
}
