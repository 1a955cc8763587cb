package models

// SlotKey identifies one of a champion's ability slots.
type SlotKey string

const (
	SlotQ       SlotKey = "Q"
	SlotW       SlotKey = "W"
	SlotE       SlotKey = "E"
	SlotR       SlotKey = "R"
	SlotPassive SlotKey = "Passive"
)

// ActiveSlots are the four castable slots, in cast-bar order.
var ActiveSlots = []SlotKey{SlotQ, SlotW, SlotE, SlotR}

// BaseStats holds level-1 combat stats with per-level growth.
// Attack speed is stored as attacks/second; its growth is a percentage
// (Riot convention), applied as base × (1 + growth×(level-1)/100).
type BaseStats struct {
	HP                  float64 `json:"hp"`
	HPPerLevel          float64 `json:"hp_per_level"`
	Armor               float64 `json:"armor"`
	ArmorPerLevel       float64 `json:"armor_per_level"`
	MagicResist         float64 `json:"magic_resist"`
	MagicResistPerLevel float64 `json:"magic_resist_per_level"`
	AttackDamage        float64 `json:"attack_damage"`
	AttackDamagePerLvl  float64 `json:"attack_damage_per_level"`
	AttackSpeed         float64 `json:"attack_speed"`
	AttackSpeedPerLvl   float64 `json:"attack_speed_per_level"`
	MoveSpeed           float64 `json:"move_speed"`
	AttackRange         float64 `json:"attack_range"`
}

func grown(base, perLevel float64, level int) float64 {
	return base + perLevel*float64(level-1)
}

func (s BaseStats) HPAt(level int) float64     { return grown(s.HP, s.HPPerLevel, level) }
func (s BaseStats) ArmorAt(level int) float64  { return grown(s.Armor, s.ArmorPerLevel, level) }
func (s BaseStats) MagicResistAt(level int) float64 {
	return grown(s.MagicResist, s.MagicResistPerLevel, level)
}
func (s BaseStats) AttackDamageAt(level int) float64 {
	return grown(s.AttackDamage, s.AttackDamagePerLvl, level)
}
func (s BaseStats) AttackSpeedAt(level int) float64 {
	return s.AttackSpeed * (1 + s.AttackSpeedPerLvl*float64(level-1)/100)
}

// Champion is one playable unit as seen by the pipeline: immutable for the
// duration of a run, rebuilt wholesale on the next data refresh.
type Champion struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Tags      []string             `json:"tags,omitempty"`
	Stats     BaseStats            `json:"stats"`
	Abilities map[SlotKey]*Ability `json:"abilities"`
}
