package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minios-linux/rimloc/langdata"
	"github.com/minios-linux/rimloc/memory"
	"github.com/minios-linux/rimloc/modinfo"
	"github.com/minios-linux/rimloc/pack"
	"github.com/minios-linux/rimloc/reconcile"
	"github.com/minios-linux/rimloc/target"
	"github.com/minios-linux/rimloc/translate"
)

// Run translates every mod of the project and assembles the pack. A failing
// unit never stops later units; Run fails only when output cannot be
// written or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if e.opts.Translator == nil {
		return nil, ErrNoTranslator
	}
	b, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}
	report := b.report
	root := e.cfg.OutputRoot()
	e.logger.Info("writing pack", "output", root)

	bar := newBar(e.opts.Progress, len(b.units), "mods ")
	var produced []*modinfo.Info
	for _, u := range b.units {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			break
		}
		ur, err := e.runUnit(ctx, root, b, u)
		report.Units = append(report.Units, ur)
		if bar != nil {
			bar.Increment()
		}
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return report, err
		}
		if ur.Files > 0 {
			produced = append(produced, u.info)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if len(produced) == 0 {
		e.logger.Warn("no translation output produced, skipping pack metadata")
		return report, ctx.Err()
	}
	if err := pack.Write(root, e.packInfo(), produced); err != nil {
		return report, fmt.Errorf("writing pack metadata: %w", err)
	}
	report.Packed = len(produced)
	return report, ctx.Err()
}

func (e *Engine) packInfo() pack.Info {
	var published string
	if prev := e.cfg.PreviousIDs(); len(prev) > 0 {
		published = prev[0]
	}
	return pack.Info{
		Name:            e.cfg.PackInfo.Name,
		Author:          e.cfg.PackInfo.Author,
		Description:     e.cfg.PackInfo.Description,
		Versions:        e.cfg.Versions.Targets,
		PublishedFileID: published,
		LanguageFolder:  e.snap.Language.Folder,
	}
}

// runUnit runs the keyed pass then the injection pass of one mod within a
// single session, and saves the unit's memory.
func (e *Engine) runUnit(ctx context.Context, root string, b *batch, u *unit) (UnitReport, error) {
	ur := UnitReport{ID: u.info.ID, Name: u.info.Name}
	logger := e.logger.With("mod", u.info.ID)
	logger.Info("processing mod", "name", u.info.Name)

	dir := pack.UnitDir(root, u.info)
	memPath := filepath.Join(dir, memory.FileName)
	seed, err := memory.Seed(memPath, b.previous)
	if err != nil {
		logger.Warn("ignoring unreadable unit memory", "error", err)
		seed = memory.New(memPath)
		seed.Merge(b.previous)
	}
	out := memory.New(memPath)

	session := translate.NewSession(u.info.Name, translate.SessionOptions{
		SystemPrompt:    translate.BuildSystemPrompt(e.snap.Language.Name, e.snap.Glossary, e.cfg.AI.SystemPrompt),
		HistoryLimit:    e.cfg.AI.HistoryLimit,
		BreakerFailures: e.cfg.AI.BreakerFailures,
		Pace:            e.cfg.Pace(),
		Logger:          logger,
	})
	rec := reconcile.New(e.opts.Translator, session, seed, out, reconcile.Options{
		ChunkSize: e.cfg.AI.ChunkSize,
		Logger:    logger,
	})
	langDir := languageDir(dir, e.snap.Language)

	keyed, err := e.keyedGroups(u.info)
	if err != nil {
		logger.Warn("skipping keyed pass", "error", err)
	}
	for _, kg := range keyed {
		res := rec.Reconcile(ctx, kg.group)
		ur.add(res)
		if err := e.write(filepath.Join(langDir, kg.file.Rel), res, true, &ur); err != nil {
			return ur, err
		}
	}

	set := e.collect(b.index, u.docs)
	for _, g := range set.Groups() {
		res := rec.Reconcile(ctx, g)
		ur.add(res)
		path := filepath.Join(langDir, "DefInjected", g.DefType, g.Document)
		if err := e.write(path, res, false, &ur); err != nil {
			return ur, err
		}
	}

	if out.Len() > 0 {
		if err := out.Save(); err != nil {
			return ur, err
		}
	}
	ur.Memory = out.Summary()
	logger.Info("mod done", "translated", ur.Translated, "reused", ur.Reusable, "failed", ur.Failed, "files", ur.Files)
	return ur, nil
}

func (e *Engine) write(path string, res reconcile.Result, sorted bool, ur *UnitReport) error {
	entries := make([]langdata.Entry, 0, len(res.Translations))
	for _, t := range res.Translations {
		entries = append(entries, langdata.Entry{Key: t.Key, Text: t.Text})
	}
	wrote, err := langdata.WriteFile(path, entries, sorted)
	if err != nil {
		return err
	}
	if wrote {
		ur.Files++
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scan
// ---------------------------------------------------------------------------

// Scan runs everything up to the partition step and reports, per mod, how
// many keys are new, stale or reusable. Nothing is translated or written.
func (e *Engine) Scan(ctx context.Context) (*Report, error) {
	b, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}
	root := e.cfg.OutputRoot()
	for _, u := range b.units {
		if err := ctx.Err(); err != nil {
			b.report.Interrupted = true
			break
		}
		ur := UnitReport{ID: u.info.ID, Name: u.info.Name}
		memPath := filepath.Join(pack.UnitDir(root, u.info), memory.FileName)
		seed, err := memory.Seed(memPath, b.previous)
		if err != nil {
			e.logger.Warn("ignoring unreadable unit memory", "mod", u.info.ID, "error", err)
			seed = b.previous
		}

		var groups []*target.Group
		keyed, err := e.keyedGroups(u.info)
		if err != nil {
			e.logger.Warn("skipping keyed pass", "mod", u.info.ID, "error", err)
		}
		for _, kg := range keyed {
			groups = append(groups, kg.group)
		}
		groups = append(groups, e.collect(b.index, u.docs).Groups()...)

		for _, g := range groups {
			ur.addPlan(reconcile.Partition(g.Targets, seed))
		}
		b.report.Units = append(b.report.Units, ur)
	}
	return b.report, ctx.Err()
}
