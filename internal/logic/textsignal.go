package logic

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riftlab/archetype-api/internal/models"
)

// Signal is everything the extractor can infer from one ability
// description. At most one CC finding is ever reported per ability —
// the first matching pattern in priority order wins, so synonym or
// repeat mentions of the same effect cannot inflate downstream scores.
type Signal struct {
	CCType      models.CCType
	CCDuration  float64
	Reliability float64
	IsAOE       bool
	TargetCount float64
	IsSkillshot bool

	// MobilityWeight is the additive mobility contribution of this
	// ability (dash/blink/movement-speed tiers).
	MobilityWeight float64
	// SustainBonus is the additive heal/shield/lifesteal contribution.
	SustainBonus float64
	// IsMobilityTool marks abilities that move the caster (escape range).
	IsMobilityTool bool
	// HasDamageVerb reports explicit damage language ("deals", "strikes").
	HasDamageVerb bool
}

// ccPattern pairs a CC type with its detection regex. Order is the
// correctness-critical priority ranking: hard CC before soft CC, and
// specific patterns before generic ones.
type ccPattern struct {
	ccType  models.CCType
	pattern *regexp.Regexp
}

var ccPatterns = []ccPattern{
	{models.CCKnockUp, regexp.MustCompile(`knock(?:s|ing|ed)?.*?(?:up|into\s+the\s+air|airborne)`)},
	{models.CCSuppress, regexp.MustCompile(`suppress(?:es|ing|ed)?`)},
	{models.CCStun, regexp.MustCompile(`stun(?:s|ning|ned)?`)},
	{models.CCRoot, regexp.MustCompile(`(?:root|bind|immobilize)(?:s|ing|ed)?`)},
	{models.CCSnare, regexp.MustCompile(`snare(?:s|ing|ed)?`)},
	{models.CCCharm, regexp.MustCompile(`charm(?:s|ing|ed)?`)},
	{models.CCFear, regexp.MustCompile(`fear(?:s|ing|ed)?|terrif(?:y|ies|ied)`)},
	{models.CCTaunt, regexp.MustCompile(`taunt(?:s|ing|ed)?`)},
	{models.CCSleep, regexp.MustCompile(`sleep(?:s|ing)?|asleep`)},
	{models.CCSilence, regexp.MustCompile(`silence(?:s|d)?`)},
	{models.CCBlind, regexp.MustCompile(`blind(?:s|ing|ed)?`)},
	{models.CCGround, regexp.MustCompile(`ground(?:s|ing|ed)?`)},
	{models.CCSlow, regexp.MustCompile(`slow(?:s|ing|ed)?`)},
}

// typicalDurations backs off when no explicit "N second(s)" is present.
var typicalDurations = map[models.CCType]float64{
	models.CCStun: 1.5, models.CCKnockUp: 1.0, models.CCSuppress: 2.5,
	models.CCRoot: 2.0, models.CCSnare: 2.0, models.CCCharm: 1.5,
	models.CCFear: 1.5, models.CCTaunt: 1.5, models.CCSleep: 2.0,
	models.CCSilence: 2.0, models.CCBlind: 2.0, models.CCSlow: 2.0,
	models.CCGround: 2.0,
}

// Reliability tiers: how likely the effect is to land.
const (
	ReliabilityPointClick    = 1.0
	ReliabilityConditional   = 0.7
	ReliabilityEasySkillshot = 0.6
	ReliabilityHardSkillshot = 0.3
)

// Durations above this are almost always an unrelated numeric concept
// (terrain lifetime, buff duration) the regex latched onto.
const maxCCDuration = 10.0

var (
	durationRe    = regexp.MustCompile(`(?:for\s+)?([\d.]+)\s*(?:second|sec)`)
	conditionalRe = regexp.MustCompile(`\b(?:if|when|after|marked)\b`)
	msBuffRe      = regexp.MustCompile(`(?:gain|grant|increase)\w*\b.*?movement speed`)
)

var (
	skillshotWords = []string{"skillshot", "fires", "throws", "shoots", "hurls", "launches", "sends", "projectile", "missile", "line", "cone", "bolt"}
	largeAOEWords  = []string{"all enemies", "all champions", "all nearby", "massive area"}
	mediumAOEWords = []string{"nearby enemies", "area", "enemies in", "around", "surrounding", "aoe"}
	smallAOEWords  = []string{"enemies hit", "multiple", "splash"}
	dashWords      = []string{"dash", "leap", "lunge"}
	blinkWords     = []string{"blink", "teleport", "flash"}
	damageVerbs    = []string{"deal", "damage", "strike", "hit", "attack"}
	strongUtility  = []string{"wall", "terrain", "invisible", "block"}
)

// Mobility weights: blinks beat dashes beat speed buffs.
const (
	mobilityDash         = 1.0
	mobilityBlink        = 1.2
	mobilityMSBuff       = 0.5
	mobilityUnstoppable  = 0.45
)

// suspiciousDamageValues are common config magnitudes (ranges, durations
// scaled by 100, zone sizes) that extraction mistakes for base damage.
var suspiciousDamageValues = map[float64]bool{
	800: true, 1000: true, 1200: true, 1500: true, 2000: true, 2500: true, 3000: true,
}

// SignalExtractor parses free-text ability descriptions. It is the only
// component allowed to interpret description text; everything downstream
// consumes its Signal.
type SignalExtractor struct{}

func NewSignalExtractor() *SignalExtractor { return &SignalExtractor{} }

// InferSignal extracts all non-numeric signal from one description.
func (e *SignalExtractor) InferSignal(description string) Signal {
	sig := Signal{Reliability: ReliabilityPointClick, TargetCount: 1.0}
	if description == "" {
		return sig
	}
	desc := strings.ToLower(description)

	sig.IsSkillshot = containsAny(desc, skillshotWords)
	sig.HasDamageVerb = containsAny(desc, damageVerbs)
	sig.IsAOE, sig.TargetCount = detectAOE(desc)
	sig.Reliability = estimateReliability(desc)

	if ccType, duration, ok := detectCC(desc); ok {
		sig.CCType = ccType
		sig.CCDuration = duration
	}

	if containsAny(desc, dashWords) || strings.Contains(desc, "dashes") {
		sig.MobilityWeight += mobilityDash
		sig.IsMobilityTool = true
	}
	if containsAny(desc, blinkWords) {
		sig.MobilityWeight += mobilityBlink
		sig.IsMobilityTool = true
	}
	if msBuffRe.MatchString(desc) {
		sig.MobilityWeight += mobilityMSBuff
	}
	if strings.Contains(desc, "unstoppable") || strings.Contains(desc, "cannot be stopped") {
		sig.MobilityWeight += mobilityUnstoppable
	}

	if containsAny(desc, []string{"heal", "restore", "regenerate"}) {
		sig.SustainBonus += 0.3
	}
	if strings.Contains(desc, "shield") {
		sig.SustainBonus += 0.25
	}
	if containsAny(desc, []string{"lifesteal", "life steal", "omnivamp", "spell vamp", "spellvamp"}) {
		sig.SustainBonus += 0.2
	}

	return sig
}

// FilterDamage decides whether extracted damage values are a false
// positive for the given slot. Returns false (with a reason) when the
// values must be discarded rather than propagated.
func (e *SignalExtractor) FilterDamage(slot models.SlotKey, baseDamage []float64, description string) (bool, string) {
	if len(baseDamage) == 0 {
		return true, ""
	}
	maxDamage := baseDamage[0]
	for _, v := range baseDamage[1:] {
		if v > maxDamage {
			maxDamage = v
		}
	}
	desc := strings.ToLower(description)

	// Non-ultimate damage this high is a misread range or duration.
	if slot != models.SlotR && maxDamage > 800 {
		return false, "non-ult damage above sanity ceiling"
	}

	// Strong utility vocabulary without a damage verb: the numbers nearby
	// describe the utility effect, not damage.
	if containsAny(desc, strongUtility) && !containsAny(desc, damageVerbs) {
		return false, "utility ability without damage verb"
	}

	if slot != models.SlotR && suspiciousDamageValues[maxDamage] {
		return false, "suspicious round value"
	}

	return true, ""
}

func detectCC(desc string) (models.CCType, float64, bool) {
	// Explicit duration applies to whichever pattern matches first.
	explicit := -1.0
	if m := durationRe.FindStringSubmatch(desc); m != nil {
		if v, err := strconv.ParseFloat(strings.Trim(m[1], "."), 64); err == nil {
			explicit = v
		}
	}

	for _, p := range ccPatterns {
		if !p.pattern.MatchString(desc) {
			continue
		}
		duration := typicalDurations[p.ccType]
		// An extracted duration past the ceiling is an unrelated number;
		// fall back to the typical value instead of propagating it.
		if explicit > 0 && explicit <= maxCCDuration {
			duration = explicit
		}
		return p.ccType, duration, true
	}
	return "", 0, false
}

func estimateReliability(desc string) float64 {
	if containsAny(desc, []string{"skillshot", "line", "projectile"}) {
		if strings.Contains(desc, "narrow") || strings.Contains(desc, "fast") {
			return ReliabilityHardSkillshot
		}
		return ReliabilityEasySkillshot
	}
	if conditionalRe.MatchString(desc) {
		return ReliabilityConditional
	}
	return ReliabilityPointClick
}

func detectAOE(desc string) (bool, float64) {
	if containsAny(desc, largeAOEWords) {
		return true, 3.0
	}
	if containsAny(desc, mediumAOEWords) {
		return true, 2.0
	}
	if containsAny(desc, smallAOEWords) {
		return true, 1.5
	}
	return false, 1.0
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
