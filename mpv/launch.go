package mpv

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"

	"github.com/user/vidnotes/deps"
	"github.com/user/vidnotes/player"
)

// LaunchArgs returns the mpv command line for an idle player listening on socketPath.
func LaunchArgs(socketPath string, vars player.Vars) []string {
	args := []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--input-ipc-server=" + socketPath,
	}
	if !vars.Controls {
		args = append(args, "--osc=no")
	}
	if !vars.PlaysInline {
		args = append(args, "--fullscreen=yes")
	}
	if !vars.Related {
		// mpv has no related-video overlay; keep it from queueing playlists instead.
		args = append(args, "--ytdl-raw-options=no-playlist=")
	}
	return args
}

// LaunchMpv starts an idle mpv with its IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(mpvPath, socketPath string, vars player.Vars) (*exec.Cmd, error) {
	if err := deps.CheckMpv(mpvPath); err != nil {
		return nil, err
	}
	if mpvPath == "" {
		mpvPath = "mpv"
	}

	// A socket left behind by a crashed mpv would accept no connections.
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cmd := exec.Command(mpvPath, LaunchArgs(socketPath, vars)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
