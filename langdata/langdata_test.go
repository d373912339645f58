package langdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyedFile(t *testing.T) {
	data := []byte("\xEF\xBB\xBF" + `<?xml version="1.0" encoding="utf-8"?>
<LanguageData>
  <!-- greeting -->
  <Hello>Hello, {0}!</Hello>
  <Multi>line one\nline two</Multi>
  <Empty>   </Empty>
  <Markup>Use <b>bold</b> &amp; more</Markup>
  <Hello>duplicate</Hello>
</LanguageData>`)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "Multi", "Markup"}, f.Keys())

	v, ok := f.Get("Hello")
	require.True(t, ok)
	assert.Equal(t, "Hello, {0}!", v)

	v, _ = f.Get("Multi")
	assert.Equal(t, `line one\nline two`, v)

	v, _ = f.Get("Markup")
	assert.Equal(t, "Use <b>bold</b> & more", v)

	_, ok = f.Get("Empty")
	assert.False(t, ok)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<LanguageData><Open>`))
	assert.Error(t, err)
}

func TestMarshalSortedAndOrdered(t *testing.T) {
	entries := []Entry{
		{Key: "Zeta.label", Text: "泽塔"},
		{Key: "Alpha.label", Text: "a & <b>\nnext"},
	}

	sorted := string(Marshal(entries, true))
	assert.Equal(t, `<?xml version="1.0" encoding="utf-8"?>
<LanguageData>
  <Alpha.label>a &amp; &lt;b&gt;\nnext</Alpha.label>
  <Zeta.label>泽塔</Zeta.label>
</LanguageData>
`, sorted)
	assert.Equal(t, "Zeta.label", entries[0].Key, "input must not be reordered")

	ordered := string(Marshal(entries, false))
	assert.Less(t, strings.Index(ordered, "Zeta.label"), strings.Index(ordered, "Alpha.label"))

	assert.Equal(t, sorted, string(Marshal(entries, true)))
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Languages", "ChineseSimplified", "Keyed", "Mod.xml")

	written, err := WriteFile(path, []Entry{{Key: "Greeting", Text: "你好\n世界"}}, true)
	require.NoError(t, err)
	assert.True(t, written)

	f, err := ParseFile(path)
	require.NoError(t, err)
	v, _ := f.Get("Greeting")
	assert.Equal(t, `你好\n世界`, v)
}

func TestWriteFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Empty.xml")
	written, err := WriteFile(path, nil, false)
	require.NoError(t, err)
	assert.False(t, written)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
