package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/minios-linux/rimloc/memory"
	"github.com/minios-linux/rimloc/target"
	"github.com/minios-linux/rimloc/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranslator answers "zh:<source>" or fails with err.
type fakeTranslator struct {
	err     error
	batches [][]string
}

func (f *fakeTranslator) Translate(_ context.Context, _ *translate.Session, items []translate.Item) ([]translate.Item, error) {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	f.batches = append(f.batches, keys)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]translate.Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].TranslatedText = "zh:" + it.SourceText
	}
	return out, nil
}

// shortTranslator answers only the first item of every batch.
type shortTranslator struct{}

func (shortTranslator) Translate(_ context.Context, _ *translate.Session, items []translate.Item) ([]translate.Item, error) {
	out := items[:1]
	out[0].TranslatedText = "zh:" + out[0].SourceText
	return out, nil
}

// renamingTranslator answers with keys that were never asked for.
type renamingTranslator struct{}

func (renamingTranslator) Translate(_ context.Context, _ *translate.Session, items []translate.Item) ([]translate.Item, error) {
	out := make([]translate.Item, len(items))
	for i, it := range items {
		out[i] = translate.NewItem("Other"+it.Key, it.SourceText, "")
		out[i].TranslatedText = "zh:" + it.SourceText
	}
	return out, nil
}

func group(targets ...target.Target) *target.Group {
	return &target.Group{DefType: "ThingDef", Document: "Things.xml", Targets: targets}
}

func seed(entries map[string]memory.Entry) *memory.Memory {
	m := memory.New("")
	for k, e := range entries {
		m.Set(k, e)
	}
	return m
}

func run(t *testing.T, tr translate.Translator, mem *memory.Memory, g *target.Group, chunk int) (Result, *memory.Memory) {
	t.Helper()
	out := memory.New("")
	r := New(tr, translate.NewSession("Unit", translate.SessionOptions{}), mem, out, Options{ChunkSize: chunk})
	return r.Reconcile(context.Background(), g), out
}

func texts(res Result) map[string]string {
	m := make(map[string]string, len(res.Translations))
	for _, tr := range res.Translations {
		m[tr.Key] = tr.Text
	}
	return m
}

func TestPartition(t *testing.T) {
	mem := seed(map[string]memory.Entry{
		"Same.label":     memory.NewEntry("same", "同", ""),
		"Source.label":   memory.NewEntry("old source", "旧", ""),
		"Context.label":  memory.NewEntry("ctx", "境", "old context"),
		"Error.label":    memory.NewEntry("err", memory.ErrorPrefix+"err", ""),
		"Fallback.label": memory.NewEntry("fb", memory.FallbackPrefix+"fb", ""),
	})
	targets := []target.Target{
		{Key: "New.label", Source: "new"},
		{Key: "Same.label", Source: "same"},
		{Key: "Source.label", Source: "new source"},
		{Key: "Context.label", Source: "ctx", Context: "new context"},
		{Key: "Error.label", Source: "err"},
		{Key: "Fallback.label", Source: "fb"},
	}

	plan := Partition(targets, mem)

	want := map[string]Status{
		"New.label":      StatusNew,
		"Same.label":     StatusReusable,
		"Source.label":   StatusStale,
		"Context.label":  StatusStale,
		"Error.label":    StatusStale,
		"Fallback.label": StatusStale,
	}
	assert.Equal(t, want, plan.Status)
	assert.Equal(t, map[string]string{"Same.label": "同"}, plan.CarriedOver)
	require.Len(t, plan.ToTranslate, 5)
	assert.Equal(t, "New.label", plan.ToTranslate[0].Key)
	assert.Equal(t, "Fallback.label", plan.ToTranslate[4].Key)
	assert.Equal(t, 1, plan.Count(StatusNew))
	assert.Equal(t, 4, plan.Count(StatusStale))
	assert.Equal(t, "reusable", StatusReusable.String())
}

func TestReuseScenario(t *testing.T) {
	mem := seed(map[string]memory.Entry{"Foo.label": memory.NewEntry("Foo", "富", "")})
	tr := &fakeTranslator{}

	res, out := run(t, tr, mem, group(target.Target{Key: "Foo.label", Source: "Foo"}), 0)

	assert.Empty(t, tr.batches)
	assert.Equal(t, map[string]string{"Foo.label": "富"}, texts(res))
	e, ok := out.Get("Foo.label")
	require.True(t, ok)
	assert.Equal(t, memory.NewEntry("Foo", "富", ""), e)
}

func TestFailureScenario(t *testing.T) {
	failing := &fakeTranslator{err: fmt.Errorf("%w: status 500", translate.ErrHardFailure)}
	g := group(target.Target{Key: "Foo.label", Source: "Foo"})

	res, out := run(t, failing, memory.New(""), g, 0)
	assert.Equal(t, map[string]string{"Foo.label": memory.ErrorPrefix + "Foo"}, texts(res))
	assert.Equal(t, 1, res.Failed)
	e, _ := out.Get("Foo.label")
	assert.False(t, e.Trustworthy())

	// the failed entry is retried next run
	ok := &fakeTranslator{}
	res, _ = run(t, ok, out, g, 0)
	assert.Equal(t, [][]string{{"Foo.label"}}, ok.batches)
	assert.Equal(t, map[string]string{"Foo.label": "zh:Foo"}, texts(res))
	assert.Equal(t, StatusStale, res.Plan.Status["Foo.label"])
}

func TestNoResultFallsBackToSource(t *testing.T) {
	tr := &fakeTranslator{err: translate.ErrNoResult}
	res, out := run(t, tr, nil, group(
		target.Target{Key: "A.label", Source: "a"},
		target.Target{Key: "B.label", Source: "b"},
	), 0)

	assert.Equal(t, map[string]string{
		"A.label": memory.FallbackPrefix + "a",
		"B.label": memory.FallbackPrefix + "b",
	}, texts(res))
	assert.Equal(t, 2, res.Fallback)
	e, _ := out.Get("B.label")
	assert.False(t, e.Trustworthy())
}

func TestIdempotence(t *testing.T) {
	g := group(
		target.Target{Key: "A.label", Source: "a"},
		target.Target{Key: "B.label", Source: "b", Context: "ctx"},
	)

	first := &fakeTranslator{}
	res1, mem := run(t, first, memory.New(""), g, 0)
	require.Len(t, first.batches, 1)

	second := &fakeTranslator{}
	res2, mem2 := run(t, second, mem, g, 0)
	assert.Empty(t, second.batches)
	assert.Equal(t, res1.Translations, res2.Translations)
	assert.Equal(t, mem.Entries, mem2.Entries)
}

func TestSequentialBatchesInOrder(t *testing.T) {
	var targets []target.Target
	for i := 0; i < 5; i++ {
		targets = append(targets, target.Target{Key: fmt.Sprintf("K%d.label", i), Source: fmt.Sprint(i)})
	}
	tr := &fakeTranslator{}
	res, _ := run(t, tr, nil, group(targets...), 2)

	assert.Equal(t, [][]string{
		{"K0.label", "K1.label"},
		{"K2.label", "K3.label"},
		{"K4.label"},
	}, tr.batches)
	assert.Equal(t, 5, res.Translated)
	assert.Equal(t, "K0.label", res.Translations[0].Key)
	assert.Equal(t, "zh:4", res.Translations[4].Text)
}

func TestMemoryHoldsOnlyResolvedKeys(t *testing.T) {
	mem := seed(map[string]memory.Entry{
		"Gone.label": memory.NewEntry("gone", "去", ""),
		"Kept.label": memory.NewEntry("kept", "留", ""),
	})
	_, out := run(t, &fakeTranslator{}, mem, group(
		target.Target{Key: "Kept.label", Source: "kept"},
		target.Target{Key: "New.label", Source: "new"},
	), 0)

	assert.Equal(t, []string{"Kept.label", "New.label"}, out.Keys())
}

func TestIncompleteAnswersFailTheBatch(t *testing.T) {
	g := group(
		target.Target{Key: "A.label", Source: "a"},
		target.Target{Key: "B.label", Source: "b"},
	)

	for name, tr := range map[string]translate.Translator{
		"short":   shortTranslator{},
		"renamed": renamingTranslator{},
	} {
		t.Run(name, func(t *testing.T) {
			res, _ := run(t, tr, memory.New(""), g, 0)
			assert.Equal(t, 2, res.Failed)
			assert.Zero(t, res.Translated)
			got := texts(res)
			assert.Equal(t, memory.ErrorPrefix+"a", got["A.label"])
			assert.Equal(t, memory.ErrorPrefix+"b", got["B.label"])
		})
	}
}
