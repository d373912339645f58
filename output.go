package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/minios-linux/rimloc/i18n"
	"github.com/minios-linux/rimloc/pipeline"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, blue("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, green("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, yellow("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, red("[ERROR]")+" "+format+"\n", args...)
}

// count formats n with thousands separators.
func count(n int) string {
	return humanize.Comma(int64(n))
}

// colorCount highlights non-zero counts.
func colorCount(n int, paint func(a ...any) string) string {
	if n == 0 {
		return count(n)
	}
	return paint(count(n))
}

// printReport writes the summary of a run or scan.
func printReport(w io.Writer, r *pipeline.Report, scan bool) {
	fmt.Fprintf(w, "\n%s\n", bold(fmt.Sprintf(i18n.T("Project %s"), r.Project)))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, i18n.T("Definitions: %s documents, %s abstract templates")+"\n", count(r.Documents), count(r.Templates))
	if r.Collisions > 0 {
		fmt.Fprintf(w, "%s\n", yellow(fmt.Sprintf(i18n.N("%d duplicate definition name", "%d duplicate definition names", r.Collisions), r.Collisions)))
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "%s %s\n", red(fmt.Sprintf(i18n.N("%d mod not found:", "%d mods not found:", len(r.Missing)), len(r.Missing))), strings.Join(r.Missing, ", "))
	}

	width := nameWidth(r.Units)
	for _, u := range r.Units {
		name := fmt.Sprintf("%-*s", width, u.Name)
		if scan {
			fmt.Fprintf(w, "  %s  %s %s  %s %s  %s %s\n", name,
				i18n.T("new"), colorCount(u.New, yellow),
				i18n.T("stale"), colorCount(u.Stale, yellow),
				i18n.T("reusable"), colorCount(u.Reusable, green))
			continue
		}
		fmt.Fprintf(w, "  %s  %s %s  %s %s  %s %s  %s %s\n", name,
			i18n.T("translated"), colorCount(u.Translated, green),
			i18n.T("reused"), count(u.Reusable),
			i18n.T("failed"), colorCount(u.Failed+u.Fallback, red),
			i18n.T("files"), count(u.Files))
	}

	t := r.Totals()
	if scan {
		fmt.Fprintf(w, i18n.T("%s keys to translate, %s reusable")+"\n", count(t.New+t.Stale), count(t.Reusable))
	} else if r.Packed > 0 {
		fmt.Fprintf(w, "%s %s\n", green(fmt.Sprintf(i18n.N("Pack written with %d mod:", "Pack written with %d mods:", r.Packed), r.Packed)), r.Output)
	} else {
		fmt.Fprintln(w, yellow(i18n.T("No translation output produced")))
	}
	if t.Failed+t.Fallback > 0 {
		fmt.Fprintln(w, yellow(fmt.Sprintf(i18n.N("%d key failed and will be retried next run", "%d keys failed and will be retried next run", t.Failed+t.Fallback), t.Failed+t.Fallback)))
	}
	if r.Interrupted {
		fmt.Fprintln(w, red(i18n.T("Interrupted")))
	}
}

func nameWidth(units []pipeline.UnitReport) int {
	width := 0
	for _, u := range units {
		width = max(width, len([]rune(u.Name)))
	}
	return min(width, 40)
}
