// Package defs parses RimWorld definition documents (Defs/ and Patches/ XML)
// and builds the cross-mod inheritance index used to resolve the fields a
// concrete definition inherits from its abstract parents.
//
// Parsing is lenient at the document level: a malformed document yields a
// *ParseError and is skipped, never aborting the batch.
package defs

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/encoding/htmlindex"
)

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// Field is one translatable child of a definition, in document order.
type Field struct {
	Tag  string
	Text string
}

// Node is one definition element.
type Node struct {
	// Type is the element tag, e.g. "ThingDef".
	Type string
	// Name is the definition identity: the defName child when present,
	// otherwise the Name attribute.
	Name string
	// TemplateName is the Name attribute (identity of inheritance bases).
	TemplateName string
	// ParentName is the ParentName attribute.
	ParentName string
	// Abstract reflects Abstract="True".
	Abstract bool
	// HasDefName reports whether Name came from a defName child.
	HasDefName bool
	// Fields holds the allow-listed fields declared directly on the node.
	Fields []Field
	// StuffCategories lists stuffCategories/li values in order.
	StuffCategories []string
}

// Field returns the text of a directly declared field.
func (n *Node) Field(tag string) (string, bool) {
	for _, f := range n.Fields {
		if f.Tag == tag {
			return f.Text, true
		}
	}
	return "", false
}

// Document is a parsed definition document.
type Document struct {
	// Path is the file path the document was read from.
	Path string
	// Name is the base file name, used to group output.
	Name string
	// Nodes are the definition elements in document order.
	Nodes []*Node
}

// TagSet is the allow-list of translatable field tags.
type TagSet map[string]bool

// NewTagSet builds a TagSet from a list of tags.
func NewTagSet(tags []string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			s[t] = true
		}
	}
	return s
}

// ParseError reports a document that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// element is a generic XML element tree.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

func (e *element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (e *element) child(name string) *element {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return &e.Children[i]
		}
	}
	return nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewDecoder returns an XML decoder that tolerates a UTF-8 byte order mark
// and documents declared in a non-UTF-8 encoding.
func NewDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charsetReader
	return dec
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// ParseDocument reads and parses a definition document.
func ParseDocument(path string, tags TagSet) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return ParseBytes(path, data, tags)
}

// ParseBytes parses definition document data. Definition elements are the
// children of a <Defs> root and the children of every <value> element
// (patch operation payloads).
func ParseBytes(path string, data []byte, tags TagSet) (*Document, error) {
	var root element
	if err := NewDecoder(data).Decode(&root); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc := &Document{Path: path, Name: filepath.Base(path)}
	if root.XMLName.Local == "Defs" {
		for i := range root.Children {
			doc.Nodes = append(doc.Nodes, newNode(&root.Children[i], tags))
		}
	}
	collectValues(&root, func(e *element) {
		doc.Nodes = append(doc.Nodes, newNode(e, tags))
	})
	return doc, nil
}

// collectValues calls fn for every child of every <value> element below e.
func collectValues(e *element, fn func(*element)) {
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local == "value" {
			for j := range c.Children {
				fn(&c.Children[j])
			}
		}
		collectValues(c, fn)
	}
}

func newNode(e *element, tags TagSet) *Node {
	n := &Node{
		Type:         e.XMLName.Local,
		TemplateName: e.attr("Name"),
		ParentName:   e.attr("ParentName"),
		Abstract:     strings.EqualFold(e.attr("Abstract"), "true"),
	}

	if dn := e.child("defName"); dn != nil {
		if name := strings.TrimSpace(dn.Text); name != "" {
			n.Name = name
			n.HasDefName = true
		}
	}
	if n.Name == "" {
		n.Name = n.TemplateName
	}

	seen := make(map[string]bool)
	for i := range e.Children {
		c := &e.Children[i]
		tag := c.XMLName.Local
		if !tags[tag] || seen[tag] || len(c.Children) > 0 {
			continue
		}
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		seen[tag] = true
		n.Fields = append(n.Fields, Field{Tag: tag, Text: text})
	}

	if sc := e.child("stuffCategories"); sc != nil {
		for i := range sc.Children {
			li := &sc.Children[i]
			if li.XMLName.Local != "li" {
				continue
			}
			if cat := strings.TrimSpace(li.Text); cat != "" {
				n.StuffCategories = append(n.StuffCategories, cat)
			}
		}
	}

	return n
}

// ---------------------------------------------------------------------------
// Batch scanning
// ---------------------------------------------------------------------------

// Result is the outcome of parsing one document: exactly one of Document
// and Err is set.
type Result struct {
	Path     string
	Document *Document
	Err      error
}

// ParseFiles parses every path, returning one Result per path in order.
func ParseFiles(paths []string, tags TagSet) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		doc, err := ParseDocument(p, tags)
		results = append(results, Result{Path: p, Document: doc, Err: err})
	}
	return results
}

// Scan parses every path and folds parse failures into an aggregated
// warning. The returned documents exclude failed ones; warnings is nil when
// every document parsed.
func Scan(paths []string, tags TagSet) (docs []*Document, warnings *multierror.Error) {
	for _, r := range ParseFiles(paths, tags) {
		if r.Err != nil {
			warnings = multierror.Append(warnings, r.Err)
			continue
		}
		docs = append(docs, r.Document)
	}
	return docs, warnings
}
