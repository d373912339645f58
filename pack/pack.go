// Package pack writes the metadata that turns per-mod translation output
// into a loadable RimWorld translation mod: About.xml, PublishedFileId.txt,
// LoadFolders.xml and the pack's own name translation.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/rimloc/langdata"
	"github.com/minios-linux/rimloc/modinfo"
)

// ContentDir is the folder holding one sub-folder per translated mod.
const ContentDir = "Cont"

// Info describes the translation pack itself.
type Info struct {
	Name        string
	Author      string
	Description string
	// Versions are the supported game versions ("1.5").
	Versions []string
	// PublishedFileID is the workshop id of an earlier release, if any.
	PublishedFileID string
	// LanguageFolder is the target language folder ("ChineseSimplified").
	LanguageFolder string
}

// PackageID returns "Author.Name" with spaces removed.
func (i Info) PackageID() string {
	return strings.ReplaceAll(i.Author, " ", "") + "." + strings.ReplaceAll(i.Name, " ", "")
}

// UnitDir returns the output directory of a translated mod.
func UnitDir(root string, unit *modinfo.Info) string {
	return filepath.Join(root, ContentDir, unit.SafeName())
}

// Write assembles the pack metadata under root for the units that produced
// output. It writes nothing when units is empty.
func Write(root string, info Info, units []*modinfo.Info) error {
	if len(units) == 0 {
		return nil
	}
	if err := writeAbout(root, info, units); err != nil {
		return err
	}
	if err := writeLoadFolders(root, info, units); err != nil {
		return err
	}
	return writeSelfTranslation(root, info)
}

// ---------------------------------------------------------------------------
// About
// ---------------------------------------------------------------------------

// About renders About/About.xml.
func About(info Info, units []*modinfo.Info) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<ModMetaData>\n")
	b.WriteString(fmt.Sprintf("  <name>%s</name>\n", escape(info.Name)))
	b.WriteString(fmt.Sprintf("  <author>%s</author>\n", escape(info.Author)))
	b.WriteString("  <supportedVersions>\n")
	for _, v := range info.Versions {
		b.WriteString(fmt.Sprintf("    <li>%s</li>\n", escape(v)))
	}
	b.WriteString("  </supportedVersions>\n")
	b.WriteString(fmt.Sprintf("  <packageId>%s</packageId>\n", escape(info.PackageID())))

	desc := info.Description
	for _, u := range units {
		desc += "\n  - " + u.Name
	}
	b.WriteString(fmt.Sprintf("  <description>%s</description>\n", escape(desc)))

	b.WriteString("  <loadAfter>\n")
	for _, u := range units {
		b.WriteString(fmt.Sprintf("    <li>%s</li>\n", escape(u.PackageID)))
	}
	b.WriteString("  </loadAfter>\n")
	b.WriteString("</ModMetaData>\n")
	return []byte(b.String())
}

func writeAbout(root string, info Info, units []*modinfo.Info) error {
	dir := filepath.Join(root, "About")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "About.xml"), About(info, units)); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "PublishedFileId.txt"), []byte(strings.TrimSpace(info.PublishedFileID)))
}

// ---------------------------------------------------------------------------
// LoadFolders
// ---------------------------------------------------------------------------

// LoadFolders renders LoadFolders.xml: per version, one folder per unit,
// active only when the translated mod is.
func LoadFolders(info Info, units []*modinfo.Info) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<loadFolders>\n")
	for _, v := range info.Versions {
		b.WriteString(fmt.Sprintf("  <v%s>\n", v))
		for _, u := range units {
			b.WriteString(fmt.Sprintf("    <li IfModActive=\"%s\">%s/%s</li>\n",
				escape(u.PackageID), ContentDir, escape(u.SafeName())))
		}
		b.WriteString(fmt.Sprintf("  </v%s>\n", v))
	}
	b.WriteString("</loadFolders>\n")
	return []byte(b.String())
}

func writeLoadFolders(root string, info Info, units []*modinfo.Info) error {
	return writeFile(filepath.Join(root, "LoadFolders.xml"), LoadFolders(info, units))
}

// ---------------------------------------------------------------------------
// Self translation
// ---------------------------------------------------------------------------

// SelfTranslationKey is the keyed entry naming the pack in its own language.
func SelfTranslationKey(info Info) string {
	return info.PackageID() + ".ModName"
}

func writeSelfTranslation(root string, info Info) error {
	path := filepath.Join(root, "Languages", info.LanguageFolder, "Keyed", "SelfTranslation.xml")
	_, err := langdata.WriteFile(path, []langdata.Entry{{Key: SelfTranslationKey(info), Text: info.Name}}, true)
	return err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
