package models

import "time"

// DocMeta is the metadata block stamped onto every stage document.
type DocMeta struct {
	RunID       string         `json:"run_id,omitempty"`
	Source      string         `json:"source,omitempty"`
	Note        string         `json:"note,omitempty"`
	GeneratedAt time.Time      `json:"generated_at,omitempty"`
	Version     string         `json:"version,omitempty"`
	Counts      map[string]int `json:"counts,omitempty"`
}

// RawSpell is one slot's record in the numeric damage extract. Extraction
// writes whatever it found in the .bin blob, so numbers may arrive as
// strings or as a scalar where a rank array is expected; FlexFloat(s)
// absorb that.
type RawSpell struct {
	Name         string     `json:"name"`
	BaseDamage   FlexFloats `json:"base_damage"`
	ADRatio      FlexFloat  `json:"ad_ratio"`
	APRatio      FlexFloat  `json:"ap_ratio"`
	BonusADRatio FlexFloat  `json:"bonus_ad_ratio"`
	DamageType   string     `json:"damage_type,omitempty"`
	Cooldown     FlexFloats `json:"cooldown,omitempty"`
	Source       string     `json:"source,omitempty"`
}

// DamageExtractChampion groups a champion's extracted spells by slot key.
type DamageExtractChampion struct {
	Spells map[string]*RawSpell `json:"spells"`
}

// DamageExtractDoc is the raw numeric extract: authoritative for damage and
// ratios when a slot is present, but coverage is incomplete.
type DamageExtractDoc struct {
	Metadata  DocMeta                           `json:"metadata"`
	Champions map[string]*DamageExtractChampion `json:"champions"`
}

// AbilityDetail is one slot in a descriptive source (Data Dragon or the
// wiki mirror). The wiki variant additionally populates the damage fields.
type AbilityDetail struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Cooldown     FlexFloats `json:"cooldown"`
	Cost         FlexFloats `json:"cost"`
	Range        FlexFloats `json:"range"`
	BaseDamage   FlexFloats `json:"base_damage,omitempty"`
	ADRatio      FlexFloat  `json:"ad_ratio,omitempty"`
	APRatio      FlexFloat  `json:"ap_ratio,omitempty"`
	BonusADRatio FlexFloat  `json:"bonus_ad_ratio,omitempty"`
}

// ChampionDetail is one champion in a descriptive source.
type ChampionDetail struct {
	Name      string                    `json:"name"`
	Tags      []string                  `json:"tags,omitempty"`
	Stats     ChampionStatsBlock        `json:"stats"`
	Abilities map[string]*AbilityDetail `json:"abilities"`
}

// ChampionStatsBlock mirrors the nested stats layout of the CDN dump.
type ChampionStatsBlock struct {
	BaseStats BaseStats `json:"base_stats"`
}

// ChampionDetailDoc is a descriptive-text source document. Data Dragon has
// full coverage and is the merge's required input; a wiki-scraped document
// of the same shape may be supplied as the damage-preferred overlay.
type ChampionDetailDoc struct {
	Metadata  DocMeta                    `json:"metadata"`
	Champions map[string]*ChampionDetail `json:"champions"`
}

// PatchDoc is a manual override document layered on top of the base merge.
// Each entry replaces only the damage-related fields of the named
// champion+slot. Applying a patch twice is a no-op the second time.
type PatchDoc struct {
	Metadata DocMeta                         `json:"metadata"`
	Name     string                          `json:"name,omitempty"`
	Patches  map[string]map[string]*RawSpell `json:"patches"`
}

// SpellDatabase is the merged spell document: exactly one Ability per known
// (champion, slot) pair.
type SpellDatabase struct {
	Metadata DocMeta                         `json:"metadata"`
	Spells   map[string]map[SlotKey]*Ability `json:"spells"`
}
