package logic

import "strings"

// nameOverrides maps irregular source names to canonical identifiers.
// Covers multi-word display names, punctuation the strip rule gets wrong
// (the canonical id for Cho'Gath is "Chogath", not "ChoGath"), and legacy
// internal renames. Wiki-style names and CDN ids both appear on the left.
var nameOverrides = map[string]string{
	"Wukong":          "MonkeyKing",
	"Nunu & Willump":  "Nunu",
	"Dr. Mundo":       "DrMundo",
	"Cho'Gath":        "Chogath",
	"ChoGath":         "Chogath",
	"Kha'Zix":         "Khazix",
	"KhaZix":          "Khazix",
	"Vel'Koz":         "Velkoz",
	"VelKoz":          "Velkoz",
	"Kai'Sa":          "Kaisa",
	"KaiSa":           "Kaisa",
	"Bel'Veth":        "Belveth",
	"BelVeth":         "Belveth",
	"LeBlanc":         "Leblanc",
	"Renata Glasc":    "Renata",
	"Aurelion Sol":    "AurelionSol",
	"Jarvan IV":       "JarvanIV",
	"Kog'Maw":         "KogMaw",
	"Lee Sin":         "LeeSin",
	"Master Yi":       "MasterYi",
	"Miss Fortune":    "MissFortune",
	"Rek'Sai":         "RekSai",
	"Tahm Kench":      "TahmKench",
	"Twisted Fate":    "TwistedFate",
	"Xin Zhao":        "XinZhao",
	"K'Sante":         "KSante",
	"Fiddlesticks":    "Fiddlesticks",
	"Nunu and Willump": "Nunu",
}

// CanonicalID maps an entity name as it appears in any source system to
// the canonical identifier used everywhere downstream. Exact override hits
// win; otherwise whitespace and punctuation are stripped and the result is
// used directly. Unmapped names pass through stripped — the merge treats a
// failed lookup as a coverage gap, never a crash.
func CanonicalID(name string) string {
	trimmed := strings.TrimSpace(name)
	if id, ok := nameOverrides[trimmed]; ok {
		return id
	}
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch r {
		case ' ', '\'', '&', '.', '’':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
