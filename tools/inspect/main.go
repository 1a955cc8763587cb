// Inspect dumps one champion's merged abilities, raw attributes and text
// signals straight from the source documents. Handy when a classification
// looks wrong and you need to see what the extractor actually found.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/docio"
	"github.com/riftlab/archetype-api/internal/logic"
	"github.com/riftlab/archetype-api/internal/models"
)

func main() {
	extractPath := flag.String("extract", "data/damage_extract.json", "damage extract document")
	detailPath := flag.String("detail", "data/champion_details.json", "champion detail document")
	wikiPath := flag.String("wiki", "", "optional wiki overlay document")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] <champion>")
		os.Exit(2)
	}
	target := logic.CanonicalID(flag.Arg(0))

	logger := zap.NewNop().Sugar()

	var extract models.DamageExtractDoc
	if err := docio.ReadJSON(*extractPath, &extract); err != nil {
		log.Fatalf("load extract: %v", err)
	}
	var detail models.ChampionDetailDoc
	if err := docio.ReadJSON(*detailPath, &detail); err != nil {
		log.Fatalf("load detail: %v", err)
	}
	var wiki *models.ChampionDetailDoc
	if *wikiPath != "" {
		var w models.ChampionDetailDoc
		if err := docio.ReadJSON(*wikiPath, &w); err != nil {
			log.Fatalf("load wiki: %v", err)
		}
		wiki = &w
	}

	db, _, err := logic.NewMerger(logger).Build(&extract, &detail, wiki)
	if err != nil {
		log.Fatalf("merge: %v", err)
	}
	slots := db.Spells[target]
	if slots == nil {
		log.Fatalf("unknown champion %q", target)
	}

	champs := logic.ChampionsFromDetail(&detail, db)
	ch := champs[target]
	attrs := logic.NewAttributeEngine(logger, logic.DefaultReference).Compute(ch)

	extractor := logic.NewSignalExtractor()
	for _, slot := range models.ActiveSlots {
		a := slots[slot]
		if a == nil {
			continue
		}
		sig := extractor.InferSignal(a.Description)
		fmt.Printf("=== %s: %s (cd %.1f, range %.0f)\n", slot, a.Name, a.Cooldown, a.Range)
		fmt.Printf("  damage %v  ratios ad=%.2f ap=%.2f bad=%.2f  source=%s\n",
			a.BaseDamage, a.ADRatio, a.APRatio, a.BonusADRatio, a.Source)
		if a.CCType != "" {
			fmt.Printf("  cc %s %.1fs reliability=%.2f targets=%.1f hard=%v\n",
				a.CCType, a.CCDuration, a.Reliability, a.TargetCount, a.IsHardCC)
		}
		fmt.Printf("  signal mobility=%.2f sustain=%.2f skillshot=%v aoe=%v\n",
			sig.MobilityWeight, sig.SustainBonus, sig.IsSkillshot, sig.IsAOE)
	}

	fmt.Println("=== raw attributes")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(attrs)
}
