package models

import "math"

// RangeProfile describes a champion's spatial footprint in game units.
// These stay raw (unnormalized): archetype range constraints are expressed
// in units, not percentiles.
type RangeProfile struct {
	AutoAttack       float64 `json:"auto_attack"`
	EffectiveAbility float64 `json:"effective_ability"`
	Threat           float64 `json:"threat"`
	Escape           float64 `json:"escape"`
}

// DamageProfile is a champion's scaling affinity.
type DamageProfile string

const (
	ProfilePhysical DamageProfile = "physical"
	ProfileMagic    DamageProfile = "magic"
	ProfileHybrid   DamageProfile = "hybrid"
	ProfileNeutral  DamageProfile = "neutral"
)

// DerivedAttributes is the Attribute Engine's per-champion output. Values
// are raw after the compute phase; the normalization barrier rewrites every
// field listed in NormalizedFields to its percentile rank in [0,1].
// CCScore is deliberately exempt — its absolute scale carries meaning.
type DerivedAttributes struct {
	SustainedDamage float64 `json:"sustained_damage"`
	SustainedDPS    float64 `json:"sustained_dps"`
	BurstDamage     float64 `json:"burst_damage"`
	BurstDPS        float64 `json:"burst_dps"`
	BurstRatio      float64 `json:"burst_ratio"`
	BurstIndex      float64 `json:"burst_index"`

	CCScore       float64 `json:"cc_score"`
	MobilityScore float64 `json:"mobility_score"`

	SurvivabilityEarly float64 `json:"survivability_early"`
	SurvivabilityMid   float64 `json:"survivability_mid"`
	SurvivabilityLate  float64 `json:"survivability_late"`

	WaveclearSpeed float64 `json:"waveclear_speed"`
	AOECapability  float64 `json:"aoe_capability"`
	SustainScore   float64 `json:"sustain_score"`
	GoldDependency float64 `json:"gold_dependency"`

	DamageProfile DamageProfile `json:"damage_profile"`
	RangeProfile  RangeProfile  `json:"range_profile"`
}

// NormalizedFields names every numeric field the percentile pass rewrites,
// with accessors so the pass can work over the whole table generically.
var NormalizedFields = []struct {
	Name string
	Get  func(*DerivedAttributes) float64
	Set  func(*DerivedAttributes, float64)
}{
	{"sustained_damage", func(a *DerivedAttributes) float64 { return a.SustainedDamage }, func(a *DerivedAttributes, v float64) { a.SustainedDamage = v }},
	{"sustained_dps", func(a *DerivedAttributes) float64 { return a.SustainedDPS }, func(a *DerivedAttributes, v float64) { a.SustainedDPS = v }},
	{"burst_damage", func(a *DerivedAttributes) float64 { return a.BurstDamage }, func(a *DerivedAttributes, v float64) { a.BurstDamage = v }},
	{"burst_dps", func(a *DerivedAttributes) float64 { return a.BurstDPS }, func(a *DerivedAttributes, v float64) { a.BurstDPS = v }},
	{"burst_ratio", func(a *DerivedAttributes) float64 { return a.BurstRatio }, func(a *DerivedAttributes, v float64) { a.BurstRatio = v }},
	{"burst_index", func(a *DerivedAttributes) float64 { return a.BurstIndex }, func(a *DerivedAttributes, v float64) { a.BurstIndex = v }},
	{"mobility_score", func(a *DerivedAttributes) float64 { return a.MobilityScore }, func(a *DerivedAttributes, v float64) { a.MobilityScore = v }},
	{"survivability_early", func(a *DerivedAttributes) float64 { return a.SurvivabilityEarly }, func(a *DerivedAttributes, v float64) { a.SurvivabilityEarly = v }},
	{"survivability_mid", func(a *DerivedAttributes) float64 { return a.SurvivabilityMid }, func(a *DerivedAttributes, v float64) { a.SurvivabilityMid = v }},
	{"survivability_late", func(a *DerivedAttributes) float64 { return a.SurvivabilityLate }, func(a *DerivedAttributes, v float64) { a.SurvivabilityLate = v }},
	{"waveclear_speed", func(a *DerivedAttributes) float64 { return a.WaveclearSpeed }, func(a *DerivedAttributes, v float64) { a.WaveclearSpeed = v }},
	{"aoe_capability", func(a *DerivedAttributes) float64 { return a.AOECapability }, func(a *DerivedAttributes, v float64) { a.AOECapability = v }},
	{"sustain_score", func(a *DerivedAttributes) float64 { return a.SustainScore }, func(a *DerivedAttributes, v float64) { a.SustainScore = v }},
	{"gold_dependency", func(a *DerivedAttributes) float64 { return a.GoldDependency }, func(a *DerivedAttributes, v float64) { a.GoldDependency = v }},
}

// Numeric resolves an attribute name to its value for classification.
// Range-profile fields are addressed as range_profile constraints instead.
func (a *DerivedAttributes) Numeric(name string) (float64, bool) {
	switch name {
	case "cc_score":
		return a.CCScore, true
	}
	for _, f := range NormalizedFields {
		if f.Name == name {
			return f.Get(a), true
		}
	}
	return 0, false
}

// RangeValue resolves a range-profile field name.
func (a *DerivedAttributes) RangeValue(name string) (float64, bool) {
	switch name {
	case "auto_attack":
		return a.RangeProfile.AutoAttack, true
	case "effective_ability":
		return a.RangeProfile.EffectiveAbility, true
	case "threat":
		return a.RangeProfile.Threat, true
	case "escape":
		return a.RangeProfile.Escape, true
	}
	return 0, false
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Round applies the canonical 3-decimal write precision to every numeric
// field so serialized documents round-trip exactly.
func (a *DerivedAttributes) Round() {
	for _, f := range NormalizedFields {
		f.Set(a, round3(f.Get(a)))
	}
	a.CCScore = round3(a.CCScore)
	a.RangeProfile.AutoAttack = round3(a.RangeProfile.AutoAttack)
	a.RangeProfile.EffectiveAbility = round3(a.RangeProfile.EffectiveAbility)
	a.RangeProfile.Threat = round3(a.RangeProfile.Threat)
	a.RangeProfile.Escape = round3(a.RangeProfile.Escape)
}

// AttributesDoc is the derived-attributes stage document.
type AttributesDoc struct {
	Metadata  DocMeta                       `json:"metadata"`
	Champions map[string]*DerivedAttributes `json:"champions"`
}
