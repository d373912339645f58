package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTags = NewTagSet([]string{"label", "description", "jobString"})

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDefsDocument(t *testing.T) {
	data := []byte("\xEF\xBB\xBF" + `<?xml version="1.0" encoding="utf-8"?>
<Defs>
  <!-- comment -->
  <ThingDef Name="BaseWall" Abstract="True">
    <label>wall</label>
    <stuffCategories>
      <li>Woody</li>
      <li>Stony</li>
    </stuffCategories>
  </ThingDef>
  <ThingDef ParentName="BaseWall">
    <defName>Foo</defName>
    <label>  foo  </label>
    <description></description>
    <graphicData><texPath>x</texPath></graphicData>
    <comps><li>ignored</li></comps>
  </ThingDef>
</Defs>`)

	doc, err := ParseBytes("Things.xml", data, testTags)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Things.xml", doc.Name)

	base := doc.Nodes[0]
	assert.True(t, base.Abstract)
	assert.False(t, base.HasDefName)
	assert.Equal(t, "BaseWall", base.Name)
	assert.Equal(t, "BaseWall", base.TemplateName)
	assert.Equal(t, []string{"Woody", "Stony"}, base.StuffCategories)

	foo := doc.Nodes[1]
	assert.True(t, foo.HasDefName)
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, "BaseWall", foo.ParentName)
	assert.Equal(t, []Field{{Tag: "label", Text: "foo"}}, foo.Fields)
}

func TestParsePatchValues(t *testing.T) {
	data := []byte(`<Patch>
  <Operation Class="PatchOperationAdd">
    <xpath>Defs</xpath>
    <value>
      <ThingDef ParentName="BaseWall">
        <defName>PatchedWall</defName>
        <label>patched wall</label>
      </ThingDef>
    </value>
  </Operation>
</Patch>`)

	doc, err := ParseBytes("Patch.xml", data, testTags)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "PatchedWall", doc.Nodes[0].Name)
	text, ok := doc.Nodes[0].Field("label")
	assert.True(t, ok)
	assert.Equal(t, "patched wall", text)
}

func TestParseNonUTF8Declaration(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<Defs><ThingDef><defName>Cafe</defName><label>caf\xe9</label></ThingDef></Defs>")
	doc, err := ParseBytes("Latin.xml", data, testTags)
	require.NoError(t, err)
	text, _ := doc.Nodes[0].Field("label")
	assert.Equal(t, "café", text)
}

func TestScanSkipsMalformedDocuments(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "Good.xml", `<Defs><ThingDef><defName>A</defName><label>a</label></ThingDef></Defs>`)
	bad := writeFile(t, dir, "Bad.xml", `<Defs><ThingDef>`)
	missing := filepath.Join(dir, "Missing.xml")

	docs, warnings := Scan([]string{good, bad, missing}, testTags)
	require.Len(t, docs, 1)
	assert.Equal(t, good, docs[0].Path)
	require.NotNil(t, warnings)
	require.Len(t, warnings.Errors, 2)

	var perr *ParseError
	assert.ErrorAs(t, warnings.Errors[0], &perr)
	assert.Equal(t, bad, perr.Path)
}

func TestScanAllGood(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "Good.xml", `<Defs/>`)
	docs, warnings := Scan([]string{good}, testTags)
	assert.Len(t, docs, 1)
	assert.Nil(t, warnings)
}
