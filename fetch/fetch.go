// Package fetch downloads workshop mods with the steamcmd utility and
// resolves where Steam keeps downloaded workshop content.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

// successMarker is printed by steamcmd once per downloaded item.
const successMarker = "Success. Downloaded item"

// DefaultAppID is RimWorld's Steam application id.
const DefaultAppID = "294100"

// Options configures a download.
type Options struct {
	// SteamCMD is the steamcmd executable path.
	SteamCMD string
	// User and Password log in to Steam ("anonymous" with no password for
	// public items).
	User     string
	Password string
	// AppID is the game's Steam application id.
	AppID string
	// Progress receives a progress bar; nil disables it.
	Progress io.Writer
	Logger   *slog.Logger
}

func (o Options) effectiveUser() string {
	if o.User == "" {
		return "anonymous"
	}
	return o.User
}

func (o Options) effectiveAppID() string {
	if o.AppID == "" {
		return DefaultAppID
	}
	return o.AppID
}

func (o Options) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Result holds the outcome of a download run.
type Result struct {
	// Requested is the number of ids submitted.
	Requested int
	// Downloaded counts the items steamcmd reported as downloaded.
	Downloaded int
	// ExitCode is steamcmd's exit status.
	ExitCode int
}

// Args builds the steamcmd argument list for ids.
func Args(opts Options, ids []string) []string {
	args := []string{"+login", opts.effectiveUser()}
	if opts.Password != "" {
		args = append(args, opts.Password)
	}
	for _, id := range ids {
		args = append(args, "+workshop_download_item", opts.effectiveAppID(), id)
	}
	return append(args, "+quit")
}

// Download runs steamcmd for ids in one session. A non-zero exit status is
// reported in the result and logged, not returned as an error.
func Download(ctx context.Context, opts Options, ids []string) (*Result, error) {
	res := &Result{Requested: len(ids)}
	if len(ids) == 0 {
		return res, nil
	}

	path, err := exec.LookPath(opts.SteamCMD)
	if err != nil {
		return nil, fmt.Errorf("steamcmd not found at %q: %w", opts.SteamCMD, err)
	}

	logger := opts.effectiveLogger()
	logger.Info("downloading workshop items", "count", len(ids))

	cmd := exec.CommandContext(ctx, path, Args(opts, ids)...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attaching to steamcmd: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting steamcmd: %w", err)
	}

	var bar *pb.ProgressBar
	if opts.Progress != nil {
		bar = pb.New(len(ids)).SetWriter(opts.Progress).Set("prefix", "steamcmd ").Start()
	}

	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Debug("steamcmd", "line", line)
		if strings.Contains(line, successMarker) {
			res.Downloaded++
			if bar != nil {
				bar.Increment()
			}
		}
	}

	waitErr := cmd.Wait()
	if bar != nil {
		bar.Finish()
	}
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			logger.Warn("steamcmd exited with non-zero status", "code", res.ExitCode)
			return res, nil
		}
		return nil, fmt.Errorf("running steamcmd: %w", waitErr)
	}
	return res, nil
}

// WorkshopContentPath returns the Steam workshop content directory for the
// running platform. A non-empty override wins.
func WorkshopContentPath(override, windowsSteamPath string) string {
	home, _ := os.UserHomeDir()
	return workshopContentPath(runtime.GOOS, home, override, windowsSteamPath)
}

func workshopContentPath(goos, home, override, windowsSteamPath string) string {
	if override != "" {
		return override
	}
	switch goos {
	case "windows":
		return filepath.Join(windowsSteamPath, "steamapps", "workshop", "content")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "workshop", "content")
	}
	primary := filepath.Join(home, ".steam", "steam", "steamapps", "workshop", "content")
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	return filepath.Join(home, ".local", "share", "Steam", "steamapps", "workshop", "content")
}

// ModPath returns the directory of a downloaded workshop item.
func ModPath(workshop, appID, id string) string {
	if appID == "" {
		appID = DefaultAppID
	}
	return filepath.Join(workshop, appID, id)
}
