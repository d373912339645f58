// Package modinfo reads RimWorld mod metadata and locates the XML sources
// of a mod: About/About.xml, LoadFolders.xml and the per-version content
// folders.
package modinfo

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/minios-linux/rimloc/defs"
)

// Info describes one content unit (a mod).
type Info struct {
	// ID is the workshop id the mod was found under.
	ID string
	// Name is the display name.
	Name string
	// Author is the declared author.
	Author string
	// PackageID is the lowercase package identifier.
	PackageID string
	// Path is the mod's root directory.
	Path string
}

// SafeName is the directory name used for this unit's output.
func (i *Info) SafeName() string {
	return SafeName(i.Name)
}

// Fallback returns the metadata used when a mod has no readable About.xml.
func Fallback(id, path string) *Info {
	return &Info{ID: id, Name: id, PackageID: id, Path: path}
}

type aboutXML struct {
	Name      string `xml:"name"`
	Author    string `xml:"author"`
	PackageID string `xml:"packageId"`
}

// ReadInfo reads About/About.xml. A missing file yields nil, nil. When no
// packageId is declared one is derived from author and name.
func ReadInfo(modPath string) (*Info, error) {
	path := filepath.Join(modPath, "About", "About.xml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var about aboutXML
	if err := defs.NewDecoder(data).Decode(&about); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	info := &Info{
		Name:   strings.TrimSpace(about.Name),
		Author: strings.TrimSpace(about.Author),
		Path:   modPath,
	}
	if info.Name == "" {
		info.Name = filepath.Base(modPath)
	}
	if info.Author == "" {
		info.Author = "UnknownAuthor"
	}
	if pid := strings.TrimSpace(about.PackageID); pid != "" {
		info.PackageID = strings.ToLower(pid)
	} else {
		info.PackageID = strings.ToLower(identifier(info.Author) + "." + identifier(info.Name))
	}
	return info, nil
}

// identifier keeps letters, digits and underscores.
func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}

// SafeName keeps letters, digits, space, '.', '-' and '_', trimming the
// result.
func SafeName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(" .-_", r) {
			return r
		}
		return -1
	}, name))
}

// ParseIDs splits a comma-separated id list, dropping blanks.
func ParseIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// ---------------------------------------------------------------------------
// Content folders
// ---------------------------------------------------------------------------

type loadFoldersXML struct {
	Sections []struct {
		XMLName xml.Name
		Text    string   `xml:",chardata"`
		Items   []string `xml:"li"`
	} `xml:",any"`
}

// ContentFolders returns the mod's content folders in load order. Folders
// come from LoadFolders.xml (root entries first, then each target version);
// without one, the mod root followed by existing version folders.
func ContentFolders(modPath string, versions []string) []string {
	var folders []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			folders = append(folders, p)
		}
	}

	if data, err := os.ReadFile(filepath.Join(modPath, "LoadFolders.xml")); err == nil {
		var lf loadFoldersXML
		if defs.NewDecoder(data).Decode(&lf) == nil {
			for _, v := range append([]string{""}, versions...) {
				for _, entry := range loadFolderEntries(lf, v) {
					entry = strings.ReplaceAll(strings.TrimSpace(entry), `\`, "/")
					if entry == "" {
						continue
					}
					if entry == "/" {
						add(modPath)
					} else {
						add(filepath.Join(modPath, filepath.FromSlash(entry)))
					}
				}
			}
		}
	}

	if len(folders) == 0 {
		add(modPath)
		for _, v := range versions {
			p := filepath.Join(modPath, v)
			if st, err := os.Stat(p); err == nil && st.IsDir() {
				add(p)
			}
		}
	}
	return folders
}

// loadFolderEntries returns root-level li entries for version "" and the
// entries of <v{version}> otherwise.
func loadFolderEntries(lf loadFoldersXML, version string) []string {
	if version == "" {
		var out []string
		for _, s := range lf.Sections {
			if s.XMLName.Local == "li" {
				out = append(out, s.Text)
			}
		}
		return out
	}
	for _, s := range lf.Sections {
		if s.XMLName.Local == "v"+version {
			return s.Items
		}
	}
	return nil
}

// SourceFiles returns every *.xml under <folder>/<subfolder> for the mod's
// content folders, in load order. Files are keyed by their path relative to
// the content folder: a later folder replaces an earlier file with the same
// key in place.
func SourceFiles(modPath string, versions, subfolders []string) ([]string, error) {
	var out []string
	index := make(map[string]int)
	for _, folder := range ContentFolders(modPath, versions) {
		for _, sub := range subfolders {
			dir := filepath.Join(folder, filepath.FromSlash(sub))
			if st, err := os.Stat(dir); err != nil || !st.IsDir() {
				continue
			}
			files, err := xmlFiles(dir)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				rel, err := filepath.Rel(folder, f)
				if err != nil {
					rel = f
				}
				if i, ok := index[rel]; ok {
					out[i] = f
					continue
				}
				index[rel] = len(out)
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// HelperFiles returns the extra definition documents kept for a mod under
// root/<modID>, sorted. A missing directory yields none.
func HelperFiles(root, modID string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	dir := filepath.Join(root, modID)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, nil
	}
	return xmlFiles(dir)
}

func xmlFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// LanguageFile is a source-language file of a mod.
type LanguageFile struct {
	// Path is the file path.
	Path string
	// Rel is the path relative to the language folder, mirrored in output.
	Rel string
}

// LanguageFiles returns the mod's files under Languages/<sourceFolder> in
// every content folder, in load order. A later folder replaces a file with
// the same relative path.
func LanguageFiles(modPath string, versions []string, sourceFolder string) ([]LanguageFile, error) {
	files, err := SourceFiles(modPath, versions, []string{"Languages/" + sourceFolder})
	if err != nil {
		return nil, err
	}
	out := make([]LanguageFile, 0, len(files))
	for _, f := range files {
		if rel, ok := relativeToFolder(f, sourceFolder); ok {
			out = append(out, LanguageFile{Path: f, Rel: rel})
		}
	}
	return out, nil
}

// relativeToFolder returns path relative to its nearest ancestor named
// folder.
func relativeToFolder(path, folder string) (string, bool) {
	dir := filepath.Dir(path)
	for {
		if filepath.Base(dir) == folder {
			r, err := filepath.Rel(dir, path)
			return r, err == nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
