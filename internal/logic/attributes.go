package logic

import (
	"math"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

// ReferenceStats fixes the evaluation point every champion is scored at, so
// attribute values are comparable across the roster. Level 11 with a modest
// item budget approximates the mid-game fight most games are decided in.
type ReferenceStats struct {
	Level   int
	BonusAD float64
	AP      float64

	SustainWindow  float64
	BurstWindow    float64
	BurstBaseline  float64
	CastTimeOffset float64
	AutoUptime     float64

	Checkpoints [3]int
}

// DefaultReference is the standard mid-game evaluation point.
var DefaultReference = ReferenceStats{
	Level:          11,
	BonusAD:        60,
	AP:             80,
	SustainWindow:  10,
	BurstWindow:    3,
	BurstBaseline:  1000,
	CastTimeOffset: 0.25,
	AutoUptime:     0.6,
	Checkpoints:    [3]int{6, 11, 18},
}

// ccTypeWeight scales each crowd-control type by how completely it denies
// the target's actions.
var ccTypeWeight = map[models.CCType]float64{
	models.CCStun: 1.0, models.CCKnockUp: 1.0, models.CCRoot: 1.0,
	models.CCSnare: 1.0, models.CCCharm: 1.0, models.CCFear: 1.0,
	models.CCTaunt: 1.0, models.CCSleep: 1.0,
	models.CCSuppress: 1.2,
	models.CCSilence:  0.4, models.CCBlind: 0.5, models.CCSlow: 0.2,
	models.CCGround: 0.4,
}

// goldBaselines is the class prior for item reliance, keyed by CDN tag.
var goldBaselines = map[string]float64{
	"Marksman": 0.9, "Assassin": 0.7, "Mage": 0.65,
	"Fighter": 0.5, "Tank": 0.3, "Support": 0.25,
}

const defaultGoldBaseline = 0.5

// Range-profile constants, in game units.
const (
	meleeRangeCeiling  = 200.0
	meleeThreatBonus   = 200.0
	abilityRangeCeiling = 3000.0
	abilityRangeClamp   = 2500.0
	escapeRangeCap      = 800.0
	defaultEscapeRange  = 400.0
)

// Base movement speed above this floor contributes lightly to mobility;
// ability keywords carry most of the score.
const (
	mobilityMSFloor   = 325.0
	mobilityMSDivisor = 75.0
	mobilityMSWeight  = 0.2
)

// AttributeEngine derives combat attributes from a champion's merged
// abilities and base stats. Compute is pure and safe for concurrent use.
type AttributeEngine struct {
	logger    *zap.SugaredLogger
	ref       ReferenceStats
	extractor *SignalExtractor
}

func NewAttributeEngine(logger *zap.SugaredLogger, ref ReferenceStats) *AttributeEngine {
	return &AttributeEngine{logger: logger, ref: ref, extractor: NewSignalExtractor()}
}

// abilityDamage is one rotation's worth of damage from a single ability at
// the reference point.
func (e *AttributeEngine) abilityDamage(a *models.Ability, totalAD, bonusAD, ap float64) float64 {
	return a.MaxBaseDamage() + a.ADRatio*totalAD + a.BonusADRatio*bonusAD + a.APRatio*ap
}

// Compute derives the full attribute set for one champion. Output is raw:
// the normalization pass rewrites the percentile fields afterwards.
func (e *AttributeEngine) Compute(ch *models.Champion) *models.DerivedAttributes {
	ref := e.ref
	baseAD := ch.Stats.AttackDamageAt(ref.Level)
	totalAD := baseAD + ref.BonusAD
	attackSpeed := ch.Stats.AttackSpeedAt(ref.Level)

	attrs := &models.DerivedAttributes{}

	var (
		sustainedAbility float64
		burstAbility     float64
		physWeight       float64
		magWeight        float64
		adScaling        float64
		apScaling        float64
		mobility         float64
		sustain          float64
		aoeCapability    float64
		waveclear        float64
		maxDamageRange   float64
		escapeTotal      float64
	)

	mobility += math.Max(0, ch.Stats.MoveSpeed-mobilityMSFloor) / mobilityMSDivisor * mobilityMSWeight

	for _, slot := range models.ActiveSlots {
		a := ch.Abilities[slot]
		if a == nil {
			continue
		}
		total := e.abilityDamage(a, totalAD, ref.BonusAD, ref.AP)

		casts := math.Ceil(ref.SustainWindow / a.Cooldown)
		sustainedAbility += total * casts
		burstAbility += total

		if a.TargetCount > 1 {
			aoeWeight := 1.0
			if slot == models.SlotR {
				aoeWeight = 1.5
			}
			aoeCapability += aoeWeight
			if total > 0 {
				switch {
				case a.Cooldown <= 6:
					waveclear += 1.0
				case a.Cooldown <= 10:
					waveclear += 0.6
				default:
					waveclear += 0.3
				}
			}
		}

		// Scaling ratios weighted by first-rank base damage, floored at 50
		// so ratio-only abilities still register.
		weight := math.Max(a.FirstRankBaseDamage(), 50)
		physWeight += (a.ADRatio + a.BonusADRatio) * weight
		magWeight += a.APRatio * weight

		adScaling += (a.ADRatio + a.BonusADRatio) * math.Min(casts, 3)
		apScaling += a.APRatio * math.Min(casts, 3)

		sig := e.extractor.InferSignal(a.Description)
		mobility += sig.MobilityWeight
		sustain += sig.SustainBonus
		if sig.IsMobilityTool {
			// An unlisted range still moves the caster a short distance.
			r := a.Range
			if r == 0 {
				r = defaultEscapeRange
			}
			escapeTotal += math.Min(r, escapeRangeCap)
		}

		if a.CCType != "" {
			attrs.CCScore += ccTypeWeight[a.CCType] * a.CCDuration * a.Reliability *
				a.TargetCount / (a.Cooldown + ref.CastTimeOffset)
		}

		// Effective range only counts abilities whose text implies damage;
		// global-range abilities clamp instead of dominating.
		r := a.Range
		if r > abilityRangeCeiling {
			r = abilityRangeClamp
		}
		if sig.HasDamageVerb && r > maxDamageRange {
			maxDamageRange = r
		}
	}

	// Passive text still carries mobility/sustain signal even though the
	// slot never contributes damage or CC.
	if p := ch.Abilities[models.SlotPassive]; p != nil {
		sig := e.extractor.InferSignal(p.Description)
		mobility += sig.MobilityWeight
		sustain += sig.SustainBonus
	}

	aaDamage := totalAD * attackSpeed
	attrs.SustainedDamage = sustainedAbility + aaDamage*ref.SustainWindow*ref.AutoUptime
	attrs.SustainedDPS = attrs.SustainedDamage / ref.SustainWindow
	attrs.BurstDamage = burstAbility + aaDamage*ref.BurstWindow
	attrs.BurstDPS = attrs.BurstDamage / ref.BurstWindow
	if attrs.SustainedDPS > 0 {
		attrs.BurstRatio = attrs.BurstDPS / attrs.SustainedDPS
	}
	attrs.BurstIndex = attrs.BurstRatio * math.Min(1, attrs.BurstDamage/ref.BurstBaseline)

	attrs.MobilityScore = mobility
	attrs.SustainScore = sustain
	attrs.WaveclearSpeed = waveclear
	attrs.AOECapability = aoeCapability

	for i, level := range ref.Checkpoints {
		ehp := ch.Stats.HPAt(level) *
			(1 + ch.Stats.ArmorAt(level)/100) *
			(1 + ch.Stats.MagicResistAt(level)/100)
		ehp *= (1 + 0.2*mobility) * (1 + sustain)
		switch i {
		case 0:
			attrs.SurvivabilityEarly = ehp
		case 1:
			attrs.SurvivabilityMid = ehp
		case 2:
			attrs.SurvivabilityLate = ehp
		}
	}

	switch {
	case physWeight == 0 && magWeight == 0:
		attrs.DamageProfile = models.ProfileNeutral
	case physWeight > 1.2*magWeight:
		attrs.DamageProfile = models.ProfilePhysical
	case magWeight > 1.2*physWeight:
		attrs.DamageProfile = models.ProfileMagic
	default:
		attrs.DamageProfile = models.ProfileHybrid
	}

	attrs.GoldDependency = e.goldDependency(ch, adScaling, apScaling, aaDamage, attrs.SustainedDPS)
	attrs.RangeProfile = e.rangeProfile(ch, maxDamageRange, escapeTotal)

	return attrs
}

func (e *AttributeEngine) goldDependency(ch *models.Champion, adScaling, apScaling, aaDamage, sustainedDPS float64) float64 {
	baseline := defaultGoldBaseline
	for _, tag := range ch.Tags {
		if v, ok := goldBaselines[tag]; ok {
			baseline = v
			break
		}
	}
	scaling := math.Min((adScaling+apScaling)/6, 1)
	aaShare := 0.0
	if sustainedDPS > 0 {
		aaShare = math.Min(aaDamage*e.ref.AutoUptime/sustainedDPS, 1)
	}
	return 0.5*baseline + 0.35*scaling + 0.15*aaShare
}

func (e *AttributeEngine) rangeProfile(ch *models.Champion, maxDamageRange, escapeTotal float64) models.RangeProfile {
	rp := models.RangeProfile{AutoAttack: ch.Stats.AttackRange}

	// A kit with no damaging abilities projects no further than its autos.
	rp.EffectiveAbility = maxDamageRange
	if rp.EffectiveAbility == 0 {
		rp.EffectiveAbility = rp.AutoAttack
	}

	if rp.AutoAttack <= meleeRangeCeiling {
		rp.Threat = math.Min(rp.AutoAttack+meleeThreatBonus, math.Max(rp.EffectiveAbility, rp.AutoAttack))
	} else {
		rp.Threat = math.Max(rp.AutoAttack, rp.EffectiveAbility)
	}

	rp.Escape = escapeTotal
	return rp
}

// ComputeAll derives attributes for every champion serially. The worker
// pool is the parallel entry point; this is the reference path tests
// compare against.
func (e *AttributeEngine) ComputeAll(champs map[string]*models.Champion) map[string]*models.DerivedAttributes {
	out := make(map[string]*models.DerivedAttributes, len(champs))
	for id, ch := range champs {
		out[id] = e.Compute(ch)
	}
	return out
}
