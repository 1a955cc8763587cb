package fetch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/models"
)

const wikiBase = "https://wiki.leagueoflegends.com/en-us"

var (
	rankValuesRe = regexp.MustCompile(`([\d.]+)\s*/\s*([\d.]+)(?:\s*/\s*([\d.]+))?(?:\s*/\s*([\d.]+))?(?:\s*/\s*([\d.]+))?`)
	ratioRe      = regexp.MustCompile(`\(\+\s*([\d.]+)%\s*(AP|AD|bonus AD)\)`)
)

// Wiki scrapes per-ability damage tables from the community wiki. Wiki
// numbers are hand-maintained and beat the .bin extract when both exist,
// so the merge prefers this overlay for damage fields.
type Wiki struct {
	client *client
	logger *zap.SugaredLogger
}

func NewWiki(logger *zap.SugaredLogger) *Wiki {
	return &Wiki{client: newClient(logger), logger: logger}
}

// ChampionAbilities scrapes one champion's ability page into the overlay
// document shape. Only damage-related fields are populated; everything else
// belongs to the CDN source.
func (w *Wiki) ChampionAbilities(name string) (*models.ChampionDetail, error) {
	url := fmt.Sprintf("%s/%s", wikiBase, strings.ReplaceAll(name, " ", "_"))
	body, err := w.client.get(url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse wiki page for %s: %w", name, err)
	}

	cd := &models.ChampionDetail{
		Name:      name,
		Abilities: make(map[string]*models.AbilityDetail, 4),
	}

	doc.Find("div.skill").Each(func(i int, sel *goquery.Selection) {
		slot := slotFromClass(sel)
		if slot == "" {
			return
		}
		detail := &models.AbilityDetail{
			Name: strings.TrimSpace(sel.Find(".ability-info-stats__ability").First().Text()),
		}
		sel.Find("div.ability-info-row").Each(func(j int, row *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(row.Find("dt").Text()))
			value := strings.TrimSpace(row.Find("dd").Text())
			switch {
			case strings.Contains(label, "magic damage"),
				strings.Contains(label, "physical damage"),
				strings.Contains(label, "total damage"),
				label == "damage":
				detail.BaseDamage = parseRankValues(value)
				for _, m := range ratioRe.FindAllStringSubmatch(value, -1) {
					pct, err := strconv.ParseFloat(m[1], 64)
					if err != nil {
						continue
					}
					switch m[2] {
					case "AP":
						detail.APRatio = models.FlexFloat(pct / 100)
					case "AD":
						detail.ADRatio = models.FlexFloat(pct / 100)
					case "bonus AD":
						detail.BonusADRatio = models.FlexFloat(pct / 100)
					}
				}
			}
		})
		if len(detail.BaseDamage) > 0 || detail.APRatio > 0 || detail.ADRatio > 0 || detail.BonusADRatio > 0 {
			cd.Abilities[slot] = detail
		}
	})

	if len(cd.Abilities) == 0 {
		w.logger.Debugw("wiki page had no parseable ability tables", "champion", name)
	}
	return cd, nil
}

// ChampionAbilitiesAll scrapes the overlay for a list of champions; failed
// pages are logged and skipped so one wiki hiccup never kills the run.
func (w *Wiki) ChampionAbilitiesAll(names []string) *models.ChampionDetailDoc {
	doc := &models.ChampionDetailDoc{
		Metadata: models.DocMeta{
			Source:      "wiki",
			GeneratedAt: time.Now().UTC(),
		},
		Champions: make(map[string]*models.ChampionDetail, len(names)),
	}
	for _, name := range names {
		cd, err := w.ChampionAbilities(name)
		if err != nil {
			w.logger.Warnw("wiki scrape failed", "champion", name, "error", err)
			continue
		}
		if len(cd.Abilities) > 0 {
			doc.Champions[name] = cd
		}
	}
	w.logger.Infow("wiki overlay scraped", "requested", len(names), "scraped", len(doc.Champions))
	return doc
}

func slotFromClass(sel *goquery.Selection) string {
	for _, slot := range []string{"q", "w", "e", "r"} {
		if sel.HasClass("skill_" + slot) {
			return strings.ToUpper(slot)
		}
	}
	return ""
}

func parseRankValues(s string) models.FlexFloats {
	m := rankValuesRe.FindStringSubmatch(s)
	if m == nil {
		// Single flat value.
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.SplitN(s, " ", 2)[0]), 64); err == nil {
			return models.FlexFloats{v}
		}
		return nil
	}
	var out models.FlexFloats
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
