// Command pipeline runs the batch classification pipeline: fuse the raw
// sources into the spell database, derive per-champion combat attributes,
// normalize, classify against the archetype library, and write each stage
// document atomically. Any stage failure exits non-zero naming the stage.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/config"
	"github.com/riftlab/archetype-api/internal/docio"
	"github.com/riftlab/archetype-api/internal/fetch"
	"github.com/riftlab/archetype-api/internal/logic"
	"github.com/riftlab/archetype-api/internal/models"
	"github.com/riftlab/archetype-api/internal/worker"
)

func main() {
	fetchSources := flag.Bool("fetch", false, "fetch fresh source documents before running")
	skipWiki := flag.Bool("skip-wiki", false, "run without the wiki damage overlay")
	flag.Parse()

	zlog, _ := zap.NewProduction()
	defer zlog.Sync()
	logger := zlog.Sugar()

	cfg := config.LoadPipeline()
	runID := uuid.NewString()
	logger.Infow("pipeline starting", "run_id", runID, "data_dir", cfg.DataDir)

	ctx := context.Background()

	if *fetchSources {
		if err := fetchAll(cfg, logger, *skipWiki); err != nil {
			logger.Fatalw("stage failed", "stage", "fetch", "error", err)
		}
	}

	// Stage: load sources.
	var extract models.DamageExtractDoc
	if err := docio.ReadJSON(cfg.ExtractPath, &extract); err != nil {
		logger.Fatalw("stage failed", "stage", "load_extract", "error", err)
	}
	var detail models.ChampionDetailDoc
	if err := docio.ReadJSON(cfg.DetailPath, &detail); err != nil {
		logger.Fatalw("stage failed", "stage", "load_detail", "error", err)
	}
	var wiki *models.ChampionDetailDoc
	if !*skipWiki {
		var w models.ChampionDetailDoc
		if err := docio.ReadJSON(cfg.WikiPath, &w); err != nil {
			logger.Warnw("wiki overlay unavailable, continuing without it", "path", cfg.WikiPath, "error", err)
		} else {
			wiki = &w
		}
	}

	// Stage: merge.
	merger := logic.NewMerger(logger)
	db, stats, err := merger.Build(&extract, &detail, wiki)
	if err != nil {
		logger.Fatalw("stage failed", "stage", "merge", "error", err)
	}
	db.Metadata.RunID = runID
	if patches := loadPatches(cfg.PatchDir, logger); len(patches) > 0 {
		merger.ApplyPatches(db, patches)
	}
	if err := docio.WriteJSON(filepath.Join(cfg.OutDir, "spell_database.json"), db); err != nil {
		logger.Fatalw("stage failed", "stage", "write_spell_database", "error", err)
	}
	logger.Infow("spell database written", "champions", stats.Champions, "spells", stats.Spells)

	// Stage: attributes.
	champs := logic.ChampionsFromDetail(&detail, db)
	engine := logic.NewAttributeEngine(logger, logic.DefaultReference)
	pool := worker.NewPool(engine, cfg.Workers, logger)
	attrs, err := pool.ComputeAll(ctx, champs)
	if err != nil {
		logger.Fatalw("stage failed", "stage", "attributes", "error", err)
	}

	// Stage: normalization barrier.
	if err := logic.NormalizeTable(attrs); err != nil {
		logger.Fatalw("stage failed", "stage", "normalize", "error", err)
	}
	for _, a := range attrs {
		a.Round()
	}
	attrDoc := &models.AttributesDoc{
		Metadata: models.DocMeta{
			RunID:       runID,
			Source:      "attributes",
			GeneratedAt: time.Now().UTC(),
			Counts:      map[string]int{"champions": len(attrs)},
		},
		Champions: attrs,
	}
	if err := docio.WriteJSON(filepath.Join(cfg.OutDir, "champion_attributes.json"), attrDoc); err != nil {
		logger.Fatalw("stage failed", "stage", "write_attributes", "error", err)
	}

	// Stage: classification.
	lib, err := models.LoadArchetypeLibrary(cfg.ArchetypePath)
	if err != nil {
		logger.Fatalw("stage failed", "stage", "load_archetypes", "error", err)
	}
	classifier := logic.NewClassifier(logger, lib, logic.ClassifierConfig{
		MarksmanTieScore:         cfg.MarksmanTieScore,
		MarksmanTieDPSPercentile: cfg.MarksmanTieDPSPercentile,
	})
	assignments, err := classifier.AssignAll(attrs, runID)
	if err != nil {
		logger.Fatalw("stage failed", "stage", "classify", "error", err)
	}
	if err := docio.WriteJSON(filepath.Join(cfg.OutDir, "archetype_assignments.json"), assignments); err != nil {
		logger.Fatalw("stage failed", "stage", "write_assignments", "error", err)
	}

	// Stage: persist (optional).
	if cfg.PostgresURL != "" {
		pg, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Fatalw("stage failed", "stage", "persist", "error", err)
		}
		defer pg.Close()
		store := logic.NewAssignmentStore(pg)
		if err := store.Upsert(ctx, assignments); err != nil {
			logger.Fatalw("stage failed", "stage", "persist", "error", err)
		}
		logger.Infow("assignments persisted", "champions", len(assignments.Assignments))
	}

	logger.Infow("pipeline complete", "run_id", runID, "champions", len(assignments.Assignments))
}

func fetchAll(cfg *config.PipelineConfig, logger *zap.SugaredLogger, skipWiki bool) error {
	dd := fetch.NewDataDragon(logger)
	version, err := dd.LatestVersion()
	if err != nil {
		return err
	}
	detail, err := dd.ChampionDetails(version)
	if err != nil {
		return err
	}
	if err := docio.WriteJSON(cfg.DetailPath, detail); err != nil {
		return err
	}

	cd := fetch.NewCommunityDragon(logger)
	extract, err := cd.DamageExtract("latest")
	if err != nil {
		return err
	}
	if err := docio.WriteJSON(cfg.ExtractPath, extract); err != nil {
		return err
	}

	if !skipWiki {
		names := make([]string, 0, len(detail.Champions))
		for _, ch := range detail.Champions {
			names = append(names, ch.Name)
		}
		sort.Strings(names)
		wiki := fetch.NewWiki(logger).ChampionAbilitiesAll(names)
		if err := docio.WriteJSON(cfg.WikiPath, wiki); err != nil {
			return err
		}
	}
	return nil
}

func loadPatches(dir string, logger *zap.SugaredLogger) []*models.PatchDoc {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var docs []*models.PatchDoc
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		var doc models.PatchDoc
		if err := docio.ReadJSON(filepath.Join(dir, name), &doc); err != nil {
			logger.Warnw("skipping unreadable patch", "file", name, "error", err)
			continue
		}
		if doc.Name == "" {
			doc.Name = name[:len(name)-len(".json")]
		}
		docs = append(docs, &doc)
	}
	return docs
}
