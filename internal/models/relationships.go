package models

// ArchetypePairStat is one aggregated archetype-pair row: how often two
// archetypes appear on the same team and how often that team wins.
type ArchetypePairStat struct {
	ArchetypeA string  `json:"archetype_a"`
	ArchetypeB string  `json:"archetype_b"`
	Games      uint64  `json:"games"`
	Wins       uint64  `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}
