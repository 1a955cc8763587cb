package models

// CCType classifies a crowd-control effect inferred from ability text.
type CCType string

const (
	CCKnockUp  CCType = "knock_up"
	CCSuppress CCType = "suppress"
	CCStun     CCType = "stun"
	CCRoot     CCType = "root"
	CCSnare    CCType = "snare"
	CCCharm    CCType = "charm"
	CCFear     CCType = "fear"
	CCTaunt    CCType = "taunt"
	CCSleep    CCType = "sleep"
	CCSilence  CCType = "silence"
	CCBlind    CCType = "blind"
	CCSlow     CCType = "slow"
	CCGround   CCType = "ground"
)

var hardCC = map[CCType]bool{
	CCKnockUp: true, CCSuppress: true, CCStun: true, CCRoot: true,
	CCSnare: true, CCCharm: true, CCFear: true, CCTaunt: true, CCSleep: true,
}

// IsHard reports whether the CC fully denies action.
func (c CCType) IsHard() bool { return hardCC[c] }

// DamageState describes which of the mutually exclusive damage shapes an
// ability resolved to after merge.
type DamageState int

const (
	DamageNone DamageState = iota
	DamageNumeric
	DamageRatioOnly
)

// Ability is one merged (champion, slot) record. Cooldown/cost/range come
// from the descriptive source, damage fields from the numeric extract or a
// patch, and the cc_/is_/target_ fields from the text-signal extractor.
type Ability struct {
	Champion    string  `json:"champion"`
	Slot        SlotKey `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`

	BaseDamage   []float64 `json:"base_damage"`
	ADRatio      float64   `json:"ad_ratio"`
	APRatio      float64   `json:"ap_ratio"`
	BonusADRatio float64   `json:"bonus_ad_ratio"`
	DamageType   string    `json:"damage_type,omitempty"`

	Cooldowns []float64 `json:"cooldowns"`
	Cooldown  float64   `json:"cooldown"`
	Costs     []float64 `json:"mana_costs"`
	Cost      float64   `json:"mana_cost"`
	Ranges    []float64 `json:"ranges"`
	Range     float64   `json:"range"`

	CCType      CCType  `json:"cc_type,omitempty"`
	CCDuration  float64 `json:"cc_duration,omitempty"`
	IsHardCC    bool    `json:"is_hard_cc"`
	Reliability float64 `json:"cc_reliability,omitempty"`
	IsSkillshot bool    `json:"is_skillshot"`
	IsAOE       bool    `json:"is_aoe"`
	TargetCount float64 `json:"target_count"`

	// Source names the origin of the damage fields ("bin", "wiki",
	// "patch:<name>") for audit; empty when damage is absent.
	Source string `json:"source,omitempty"`
}

// DamageState resolves the ability's damage shape. Merge and patching must
// leave every ability in exactly one of these states.
func (a *Ability) DamageState() DamageState {
	if len(a.BaseDamage) > 0 {
		return DamageNumeric
	}
	if a.ADRatio > 0 || a.APRatio > 0 || a.BonusADRatio > 0 {
		return DamageRatioOnly
	}
	return DamageNone
}

// MaxBaseDamage returns the last-rank base damage, or 0 when absent.
func (a *Ability) MaxBaseDamage() float64 {
	if len(a.BaseDamage) == 0 {
		return 0
	}
	return a.BaseDamage[len(a.BaseDamage)-1]
}

// FirstRankBaseDamage returns the rank-1 base damage, or 0 when absent.
func (a *Ability) FirstRankBaseDamage() float64 {
	if len(a.BaseDamage) == 0 {
		return 0
	}
	return a.BaseDamage[0]
}
