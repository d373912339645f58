// Package reconcile implements the translation-memory reconciliation step,
// the counterpart of msgmerge for injected text:
//   - a target absent from memory is new;
//   - a target whose source text, context and trustworthy translation all
//     match memory is reused without calling the service;
//   - anything else is stale and translated again.
//
// Failed batches resolve to sentinel-prefixed text, which memory never
// trusts, so they are retried on the next run.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minios-linux/rimloc/memory"
	"github.com/minios-linux/rimloc/target"
	"github.com/minios-linux/rimloc/translate"
)

// Status classifies a target against memory.
type Status int

const (
	StatusNew Status = iota
	StatusStale
	StatusReusable
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusStale:
		return "stale"
	case StatusReusable:
		return "reusable"
	}
	return "unknown"
}

// Plan is the partition of a group of targets.
type Plan struct {
	// CarriedOver maps reusable keys to their remembered translation.
	CarriedOver map[string]string
	// ToTranslate holds new and stale targets in discovery order.
	ToTranslate []target.Target
	// Status records the classification of every key.
	Status map[string]Status
}

// Count returns the number of keys with the given status.
func (p Plan) Count(s Status) int {
	n := 0
	for _, st := range p.Status {
		if st == s {
			n++
		}
	}
	return n
}

// Partition classifies targets against mem. A nil memory makes every
// target new.
func Partition(targets []target.Target, mem *memory.Memory) Plan {
	p := Plan{
		CarriedOver: make(map[string]string),
		Status:      make(map[string]Status, len(targets)),
	}
	for _, t := range targets {
		var (
			old memory.Entry
			ok  bool
		)
		if mem != nil {
			old, ok = mem.Get(t.Key)
		}
		switch {
		case !ok:
			p.Status[t.Key] = StatusNew
			p.ToTranslate = append(p.ToTranslate, t)
		case old.En == t.Source && old.ContextText() == t.Context && old.Trustworthy():
			p.Status[t.Key] = StatusReusable
			p.CarriedOver[t.Key] = old.Cn
		default:
			p.Status[t.Key] = StatusStale
			p.ToTranslate = append(p.ToTranslate, t)
		}
	}
	return p
}

// ---------------------------------------------------------------------------
// Reconciler
// ---------------------------------------------------------------------------

// Options configures a Reconciler.
type Options struct {
	// ChunkSize is how many targets to send per batch (0 = all at once).
	ChunkSize int
	Logger    *slog.Logger
}

func (o Options) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Translation is a resolved key.
type Translation struct {
	Key  string
	Text string
}

// Result is the outcome of reconciling one group.
type Result struct {
	// Translations holds every key of the group in discovery order.
	Translations []Translation
	Plan         Plan
	// Translated counts keys answered by the service.
	Translated int
	// Failed counts keys resolved with ErrorPrefix.
	Failed int
	// Fallback counts keys resolved with FallbackPrefix.
	Fallback int
}

// Reconciler resolves the groups of one content unit against a seed memory,
// recording every resolved key in the unit's output memory.
type Reconciler struct {
	translator translate.Translator
	session    *translate.Session
	seed       *memory.Memory
	out        *memory.Memory
	opts       Options
	logger     *slog.Logger
}

// New returns a Reconciler. seed is read, out receives a fresh entry per
// resolved key.
func New(tr translate.Translator, session *translate.Session, seed, out *memory.Memory, opts Options) *Reconciler {
	return &Reconciler{
		translator: tr,
		session:    session,
		seed:       seed,
		out:        out,
		opts:       opts,
		logger:     opts.effectiveLogger(),
	}
}

// Reconcile partitions g, translates what is new or stale in sequential
// batches and returns the resolved text of every key.
func (r *Reconciler) Reconcile(ctx context.Context, g *target.Group) Result {
	plan := Partition(g.Targets, r.seed)
	res := Result{Plan: plan}

	resolved := make(map[string]string, len(g.Targets))
	for k, v := range plan.CarriedOver {
		resolved[k] = v
	}

	for _, batch := range splitTargets(plan.ToTranslate, r.opts.ChunkSize) {
		items := make([]translate.Item, len(batch))
		for i, t := range batch {
			items[i] = translate.NewItem(t.Key, t.Source, t.Context)
		}

		answers, err := r.translator.Translate(ctx, r.session, items)
		var texts []string
		if err == nil {
			texts, err = match(batch, answers)
		}
		if err != nil {
			prefix := memory.ErrorPrefix
			if errors.Is(err, translate.ErrNoResult) {
				prefix = memory.FallbackPrefix
				res.Fallback += len(batch)
			} else {
				res.Failed += len(batch)
			}
			r.logger.Warn("batch failed", "document", g.Document, "keys", len(batch), "error", err)
			for _, t := range batch {
				resolved[t.Key] = prefix + t.Source
			}
			continue
		}

		for i, t := range batch {
			resolved[t.Key] = texts[i]
		}
		res.Translated += len(batch)
	}

	res.Translations = make([]Translation, 0, len(g.Targets))
	for _, t := range g.Targets {
		text := resolved[t.Key]
		res.Translations = append(res.Translations, Translation{Key: t.Key, Text: text})
		if r.out != nil {
			r.out.Set(t.Key, memory.NewEntry(t.Source, text, t.Context))
		}
	}
	return res
}

// match pairs each target of batch with its answer by key. A missing or
// unexpected answer fails the whole batch.
func match(batch []target.Target, answers []translate.Item) ([]string, error) {
	if len(answers) != len(batch) {
		return nil, fmt.Errorf("%w: %d answers for %d keys", translate.ErrHardFailure, len(answers), len(batch))
	}
	byKey := make(map[string]string, len(answers))
	for _, a := range answers {
		byKey[a.Key] = a.TranslatedText
	}
	texts := make([]string, len(batch))
	for i, t := range batch {
		text, ok := byKey[t.Key]
		if !ok {
			return nil, fmt.Errorf("%w: no answer for %s", translate.ErrHardFailure, t.Key)
		}
		texts[i] = text
	}
	return texts, nil
}

func splitTargets(targets []target.Target, chunkSize int) [][]target.Target {
	if len(targets) == 0 {
		return nil
	}
	if chunkSize <= 0 || chunkSize >= len(targets) {
		return [][]target.Target{targets}
	}
	var chunks [][]target.Target
	for i := 0; i < len(targets); i += chunkSize {
		end := min(i+chunkSize, len(targets))
		chunks = append(chunks, targets[i:end])
	}
	return chunks
}
