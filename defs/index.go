package defs

// Index is the global inheritance view built from every parsed document
// across all translation units. It is immutable once built.
type Index struct {
	parents   map[string]string
	templates map[string][]Field
	owners    map[string]string
}

// Collision reports a name defined more than once with differing content.
// The first definition, in document visit order, is kept.
type Collision struct {
	Name    string
	Kind    string // "parent" or "template"
	Kept    string
	Dropped string
}

// BuildIndex builds the inheritance index from documents in visit order.
// Duplicate names keep the first definition; conflicting duplicates are
// returned as collisions.
func BuildIndex(docs []*Document) (*Index, []Collision) {
	ix := &Index{
		parents:   make(map[string]string),
		templates: make(map[string][]Field),
		owners:    make(map[string]string),
	}
	parentOwners := make(map[string]string)
	var collisions []Collision

	for _, doc := range docs {
		for _, n := range doc.Nodes {
			if n.Name != "" && n.ParentName != "" {
				if prev, ok := ix.parents[n.Name]; !ok {
					ix.parents[n.Name] = n.ParentName
					parentOwners[n.Name] = doc.Path
				} else if prev != n.ParentName {
					collisions = append(collisions, Collision{
						Name: n.Name, Kind: "parent",
						Kept: parentOwners[n.Name], Dropped: doc.Path,
					})
				}
			}

			if n.Abstract && n.TemplateName != "" {
				if prev, ok := ix.templates[n.TemplateName]; !ok {
					ix.templates[n.TemplateName] = n.Fields
					ix.owners[n.TemplateName] = doc.Path
				} else if !sameFields(prev, n.Fields) {
					collisions = append(collisions, Collision{
						Name: n.TemplateName, Kind: "template",
						Kept: ix.owners[n.TemplateName], Dropped: doc.Path,
					})
				}
			}
		}
	}
	return ix, collisions
}

func sameFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Parent returns the parent name registered for name.
func (ix *Index) Parent(name string) (string, bool) {
	p, ok := ix.parents[name]
	return p, ok
}

// Template returns the fields declared directly on the abstract template.
func (ix *Index) Template(name string) ([]Field, bool) {
	f, ok := ix.templates[name]
	return f, ok
}

// Len returns the number of registered inheritance edges.
func (ix *Index) Len() int { return len(ix.parents) }

// Templates returns the number of registered abstract templates.
func (ix *Index) Templates() int { return len(ix.templates) }

// Ancestors returns the chain of names reached by following parent links
// from start (inclusive), nearest first. The walk stops at an unknown name
// or when a name repeats; cyclic reports the latter.
func (ix *Index) Ancestors(start string) (chain []string, cyclic bool) {
	visited := make(map[string]bool)
	return ix.walk(start, visited, chain)
}

func (ix *Index) walk(name string, visited map[string]bool, chain []string) ([]string, bool) {
	for name != "" {
		if visited[name] {
			return chain, true
		}
		visited[name] = true
		chain = append(chain, name)
		next, ok := ix.parents[name]
		if !ok {
			break
		}
		name = next
	}
	return chain, false
}

// Resolve returns the node's effective fields: its own fields followed by
// fields inherited along the parent chain. A tag already present is never
// overwritten, so the nearest declaration wins.
func (ix *Index) Resolve(n *Node) []Field {
	fields := make([]Field, 0, len(n.Fields))
	have := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, f)
		have[f.Tag] = true
	}

	chain, _ := ix.Ancestors(n.ParentName)
	for _, name := range chain {
		for _, f := range ix.templates[name] {
			if !have[f.Tag] {
				fields = append(fields, f)
				have[f.Tag] = true
			}
		}
	}
	return fields
}
