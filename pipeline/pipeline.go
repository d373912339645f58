// Package pipeline runs a rimloc project end to end: locate the workshop
// mods, learn the definition graph of the whole batch, reconcile every mod
// against its translation memory and assemble the pack.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"github.com/minios-linux/rimloc/config"
	"github.com/minios-linux/rimloc/defs"
	"github.com/minios-linux/rimloc/fetch"
	"github.com/minios-linux/rimloc/inject"
	"github.com/minios-linux/rimloc/langdata"
	"github.com/minios-linux/rimloc/langmeta"
	"github.com/minios-linux/rimloc/memory"
	"github.com/minios-linux/rimloc/modinfo"
	"github.com/minios-linux/rimloc/settings"
	"github.com/minios-linux/rimloc/target"
	"github.com/minios-linux/rimloc/translate"
)

// DefinitionFolders are the mod folders scanned for definitions.
var DefinitionFolders = []string{"Defs", "Patches"}

// ErrNoTranslator is returned by Run when no translator was configured.
var ErrNoTranslator = errors.New("no translator configured")

// Options configures an Engine.
type Options struct {
	// Translator answers batches. Required by Run, unused by Scan.
	Translator translate.Translator
	// Download fetches the mods with steamcmd before processing.
	Download bool
	// Progress receives progress bars; nil disables them.
	Progress io.Writer
	Logger   *slog.Logger
}

func (o Options) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Engine processes one project.
type Engine struct {
	cfg    *config.Config
	snap   *config.Snapshot
	opts   Options
	logger *slog.Logger
}

// New returns an Engine for cfg.
func New(cfg *config.Config, opts Options) *Engine {
	return &Engine{
		cfg:    cfg,
		snap:   cfg.Snapshot(),
		opts:   opts,
		logger: opts.effectiveLogger().With("project", cfg.Name()),
	}
}

// NewClient builds the HTTP translator described by cfg. The project's
// base_url wins over the endpoint stored with the credential.
func NewClient(cfg *config.Config, cred settings.Credential, logger *slog.Logger) *translate.Client {
	baseURL := cfg.AI.BaseURL
	if baseURL == "" {
		baseURL = cred.BaseURL
	}
	return translate.NewClient(translate.Options{
		Provider:    translate.ResolveProvider(cfg.AI.Provider, baseURL, cfg.System.Model, cred.Key),
		Temperature: cfg.AI.Temperature,
		MaxRetries:  cfg.AI.MaxRetries,
		RetryDelay:  cfg.RetryDelay(),
		Timeout:     cfg.Timeout(),
		Logger:      logger,
	})
}

// ---------------------------------------------------------------------------
// Preparation
// ---------------------------------------------------------------------------

// unit is one mod being translated.
type unit struct {
	info *modinfo.Info
	docs []*defs.Document
}

// batch is the state shared by every unit of a run.
type batch struct {
	units    []*unit
	index    *defs.Index
	previous *memory.Memory
	report   *Report
}

// WorkshopPath returns the workshop content directory the project reads.
func (e *Engine) WorkshopPath() string {
	return fetch.WorkshopContentPath(e.cfg.Resolve(e.cfg.System.WorkshopPath), e.cfg.System.WindowsSteamPath)
}

func (e *Engine) modPath(workshop, id string) string {
	return fetch.ModPath(workshop, e.cfg.System.AppID, id)
}

// prepare runs everything before the first collaborator call: download,
// mod discovery, the global definition pre-pass and previous-pack memory.
func (e *Engine) prepare(ctx context.Context) (*batch, error) {
	workshop := e.WorkshopPath()
	ids := e.cfg.TranslateIDs()
	previous := e.cfg.PreviousIDs()

	if e.opts.Download {
		if err := e.download(ctx, unique(previous, ids)); err != nil {
			return nil, err
		}
	}

	b := &batch{report: &Report{Project: e.cfg.Name(), Output: e.cfg.OutputRoot()}}
	for _, id := range ids {
		path := e.modPath(workshop, id)
		if st, err := os.Stat(path); err != nil || !st.IsDir() {
			e.logger.Warn("mod not found in workshop directory", "mod", id, "path", path)
			b.report.Missing = append(b.report.Missing, id)
			continue
		}
		info, err := modinfo.ReadInfo(path)
		if err != nil {
			e.logger.Warn("unreadable About.xml", "mod", id, "error", err)
		}
		if info == nil {
			info = modinfo.Fallback(id, path)
		}
		info.ID = id
		e.logger.Info("found mod", "mod", id, "name", info.Name, "packageId", info.PackageID)
		b.units = append(b.units, &unit{info: info})
	}

	var all []*defs.Document
	for _, u := range b.units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, err := e.scanUnit(u.info)
		if err != nil {
			return nil, err
		}
		u.docs = docs
		all = append(all, docs...)
	}

	ix, collisions := defs.BuildIndex(all)
	for _, c := range collisions {
		e.logger.Warn("duplicate definition name, keeping first", "name", c.Name, "kind", c.Kind, "kept", c.Kept, "dropped", c.Dropped)
	}
	b.index = ix
	b.report.Documents = len(all)
	b.report.Templates = ix.Templates()
	b.report.Collisions = len(collisions)
	e.logger.Info("definition graph built", "documents", len(all), "definitions", ix.Len(), "templates", ix.Templates())

	roots := make([]string, 0, len(previous))
	for _, id := range previous {
		roots = append(roots, e.modPath(workshop, id))
	}
	prev, warnings := memory.LoadPrevious(roots)
	if warnings != nil {
		for _, w := range warnings.Errors {
			e.logger.Warn("skipping previous memory", "error", w)
		}
	}
	e.logger.Info("previous translation memory loaded", "entries", prev.Len())
	b.previous = prev
	return b, nil
}

func (e *Engine) download(ctx context.Context, ids []string) error {
	res, err := fetch.Download(ctx, fetch.Options{
		SteamCMD: e.cfg.Resolve(e.cfg.System.SteamCMDPath),
		User:     e.cfg.System.SteamUser,
		Password: e.cfg.System.SteamPassword,
		AppID:    e.cfg.System.AppID,
		Progress: e.opts.Progress,
		Logger:   e.logger,
	}, ids)
	if err != nil {
		return fmt.Errorf("downloading mods: %w", err)
	}
	e.logger.Info("download finished", "requested", res.Requested, "downloaded", res.Downloaded)
	return nil
}

// scanUnit parses the definition, patch and helper documents of a mod.
// Documents that fail to parse are logged and skipped.
func (e *Engine) scanUnit(info *modinfo.Info) ([]*defs.Document, error) {
	paths, err := modinfo.SourceFiles(info.Path, e.cfg.Versions.Targets, DefinitionFolders)
	if err != nil {
		return nil, fmt.Errorf("listing definitions of %s: %w", info.ID, err)
	}
	helpers, err := modinfo.HelperFiles(e.cfg.HelperRoot(), info.ID)
	if err != nil {
		return nil, fmt.Errorf("listing helper files of %s: %w", info.ID, err)
	}
	if len(helpers) > 0 {
		e.logger.Info("using helper files", "mod", info.ID, "count", len(helpers))
	}
	paths = append(paths, helpers...)

	docs, warnings := defs.Scan(paths, e.snap.Tags)
	if warnings != nil {
		for _, w := range warnings.Errors {
			e.logger.Warn("skipping unparsable document", "mod", info.ID, "error", w)
		}
	}
	return docs, nil
}

// ---------------------------------------------------------------------------
// Groups
// ---------------------------------------------------------------------------

// keyedGroup is a source-language file in target form; keyed entries carry
// no context.
type keyedGroup struct {
	file  modinfo.LanguageFile
	group *target.Group
}

func (e *Engine) keyedGroups(info *modinfo.Info) ([]keyedGroup, error) {
	files, err := modinfo.LanguageFiles(info.Path, e.cfg.Versions.Targets, langmeta.SourceFolder)
	if err != nil {
		return nil, fmt.Errorf("listing language files of %s: %w", info.ID, err)
	}
	var out []keyedGroup
	for _, f := range files {
		parsed, err := langdata.ParseFile(f.Path)
		if err != nil {
			e.logger.Warn("skipping unparsable language file", "mod", info.ID, "error", err)
			continue
		}
		if parsed.Len() == 0 {
			continue
		}
		g := &target.Group{Document: f.Rel}
		for _, entry := range parsed.Entries {
			g.Targets = append(g.Targets, target.Target{Key: entry.Key, Source: entry.Text, Document: f.Rel})
		}
		out = append(out, keyedGroup{file: f, group: g})
	}
	return out, nil
}

func (e *Engine) collect(ix *defs.Index, docs []*defs.Document) *target.Set {
	return inject.NewCollector(ix, inject.Options{
		DefTypes:     e.snap.DefTypes,
		Pattern:      e.snap.Pattern,
		Catalog:      e.snap.Catalog,
		Language:     e.snap.Language.Name,
		LanguageCode: e.snap.LanguageCode,
		Logger:       e.logger,
	}).Collect(docs)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func unique(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

func languageDir(unitDir string, lang langmeta.Meta) string {
	return filepath.Join(unitDir, "Languages", lang.Folder)
}

func newBar(w io.Writer, total int, prefix string) *pb.ProgressBar {
	if w == nil || total == 0 {
		return nil
	}
	return pb.New(total).SetWriter(w).Set("prefix", prefix).Start()
}
