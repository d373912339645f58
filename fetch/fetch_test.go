package fetch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	args := Args(Options{User: "bob", Password: "pw", AppID: "294100"}, []string{"111", "222"})
	assert.Equal(t, []string{
		"+login", "bob", "pw",
		"+workshop_download_item", "294100", "111",
		"+workshop_download_item", "294100", "222",
		"+quit",
	}, args)

	assert.Equal(t, []string{"+login", "anonymous", "+quit"}, Args(Options{}, nil))
}

func fakeSteamCMD(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "steamcmd.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestDownloadCountsSuccessLines(t *testing.T) {
	bin := fakeSteamCMD(t, `
for arg in "$@"; do
  case "$arg" in
    1*|2*) echo "Success. Downloaded item $arg to somewhere" ;;
  esac
done
echo "ERROR! Download item 999 failed" >&2
`)

	var progress bytes.Buffer
	res, err := Download(context.Background(), Options{SteamCMD: bin, AppID: "5", Progress: &progress}, []string{"111", "222", "999"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 2, res.Downloaded)
	assert.Equal(t, 0, res.ExitCode)
}

func TestDownloadNonZeroExit(t *testing.T) {
	bin := fakeSteamCMD(t, "exit 7\n")
	res, err := Download(context.Background(), Options{SteamCMD: bin}, []string{"111"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.Equal(t, 0, res.Downloaded)
}

func TestDownloadMissingBinary(t *testing.T) {
	_, err := Download(context.Background(), Options{SteamCMD: filepath.Join(t.TempDir(), "nope")}, []string{"1"})
	assert.Error(t, err)
}

func TestWorkshopContentPath(t *testing.T) {
	assert.Equal(t, "/custom", workshopContentPath("linux", "/home/u", "/custom", ""))
	assert.Equal(t,
		filepath.Join("C:/Steam", "steamapps", "workshop", "content"),
		workshopContentPath("windows", "", "", "C:/Steam"))
	assert.Equal(t,
		filepath.Join("/Users/u", "Library", "Application Support", "Steam", "steamapps", "workshop", "content"),
		workshopContentPath("darwin", "/Users/u", "", ""))

	home := t.TempDir()
	assert.Equal(t,
		filepath.Join(home, ".local", "share", "Steam", "steamapps", "workshop", "content"),
		workshopContentPath("linux", home, "", ""))

	primary := filepath.Join(home, ".steam", "steam", "steamapps", "workshop", "content")
	require.NoError(t, os.MkdirAll(primary, 0o755))
	assert.Equal(t, primary, workshopContentPath("linux", home, "", ""))
}

func TestModPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/ws", DefaultAppID, "111"), ModPath("/ws", "", "111"))
}
