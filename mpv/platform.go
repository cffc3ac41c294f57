package mpv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/user/vidnotes/deps"
	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/player"
)

const (
	// WatchURLPrefix is prepended to a video id to build the URL mpv plays.
	WatchURLPrefix = "https://www.youtube.com/watch?v="
	// pauseObserverID identifies the pause property observer.
	pauseObserverID = 1
	// quitGrace is how long Destroy waits for mpv to exit before killing it.
	quitGrace = 2 * time.Second
)

// WatchURL returns the canonical watch page URL for videoID.
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}

// Platform implements player.Platform by running one mpv process per player.
// The container handle passed to NewPlayer is the IPC socket path.
type Platform struct {
	mpvPath        string
	connectTimeout time.Duration
	launch         func(mpvPath, socketPath string, vars player.Vars) (*exec.Cmd, error)
}

// NewPlatform creates an mpv platform. An empty mpvPath means "mpv" from PATH.
func NewPlatform(mpvPath string, connectTimeout time.Duration) *Platform {
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	return &Platform{
		mpvPath:        mpvPath,
		connectTimeout: connectTimeout,
		launch:         LaunchMpv,
	}
}

// WaitAvailable reports whether mpv can be run.
func (p *Platform) WaitAvailable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return deps.CheckMpv(p.mpvPath)
}

// NewPlayer launches mpv, connects to its socket and starts loading the video.
// Readiness is reported when mpv emits file-loaded.
func (p *Platform) NewPlayer(container, videoID string, vars player.Vars, events player.Events) (player.Instance, error) {
	if container == "" {
		container = DefaultSocketPath
	}

	cmd, err := p.launch(p.mpvPath, container, vars)
	if err != nil {
		return nil, fmt.Errorf("launch mpv: %w", err)
	}

	client := NewClient(container)
	client.OnEvent(eventHandler(events))

	pl := &Player{cmd: cmd, client: client, socketPath: container}
	if err := client.Dial(p.connectTimeout); err != nil {
		_ = pl.Destroy()
		return nil, fmt.Errorf("connect to mpv: %w", err)
	}
	if err := client.ObserveProperty(pauseObserverID, "pause"); err != nil {
		_ = pl.Destroy()
		return nil, fmt.Errorf("observe pause: %w", err)
	}
	if err := client.LoadFile(WatchURL(videoID)); err != nil {
		_ = pl.Destroy()
		return nil, fmt.Errorf("load %s: %w", videoID, err)
	}

	logger.Log.Debug().
		Str("video_id", videoID).
		Str("socket", container).
		Msg("mpv player started")
	return pl, nil
}

// eventHandler translates mpv events into player callbacks.
func eventHandler(events player.Events) func(Event) {
	return func(ev Event) {
		switch ev.Name {
		case "file-loaded":
			if events.OnReady != nil {
				events.OnReady()
			}
		case "start-file":
			notifyState(events, player.PlaybackBuffering)
		case "end-file":
			switch ev.Reason {
			case "error":
				if events.OnError != nil {
					events.OnError(errorCode(ev.FileError))
				}
			case "eof":
				notifyState(events, player.PlaybackEnded)
			}
		case "property-change":
			if ev.Property != "pause" {
				return
			}
			if paused, ok := ev.Data.(bool); ok {
				if paused {
					notifyState(events, player.PlaybackPaused)
				} else {
					notifyState(events, player.PlaybackPlaying)
				}
			}
		}
	}
}

func notifyState(events player.Events, code int) {
	if events.OnStateChange != nil {
		events.OnStateChange(code)
	}
}

// errorCode maps mpv's end-file file_error text onto player error codes.
func errorCode(fileError string) int {
	switch fileError {
	case "loading failed", "no such file or directory":
		return player.ErrCodeNotFound
	case "unrecognized file format", "invalid parameter":
		return player.ErrCodeInvalidParam
	default:
		return player.ErrCodePlayback
	}
}

// Player is one running mpv process.
type Player struct {
	cmd        *exec.Cmd
	client     *Client
	socketPath string
	once       sync.Once
	destroyErr error
}

// CurrentTime implements player.Instance.
func (pl *Player) CurrentTime() (float64, error) {
	return pl.client.GetTimePos()
}

// Duration implements player.Instance.
func (pl *Player) Duration() (float64, error) {
	return pl.client.GetDuration()
}

// VideoData implements player.Instance.
func (pl *Player) VideoData() (player.VideoData, error) {
	title, err := pl.client.GetMediaTitle()
	if err != nil {
		return player.VideoData{}, err
	}
	return player.VideoData{Title: title}, nil
}

// SeekTo implements player.Instance. allowSeekAhead requests an exact seek.
func (pl *Player) SeekTo(seconds float64, allowSeekAhead bool) error {
	return pl.client.Seek(seconds, allowSeekAhead)
}

// Destroy quits mpv, closes the socket and waits for the process to exit.
func (pl *Player) Destroy() error {
	pl.once.Do(func() {
		if pl.client.IsConnected() {
			_ = pl.client.Quit()
		}
		_ = pl.client.Close()

		if pl.cmd != nil && pl.cmd.Process != nil {
			exited := make(chan error, 1)
			go func() { exited <- pl.cmd.Wait() }()
			select {
			case <-exited:
			case <-time.After(quitGrace):
				pl.destroyErr = pl.cmd.Process.Kill()
				<-exited
			}
		}

		if err := os.Remove(pl.socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) && pl.destroyErr == nil {
			pl.destroyErr = err
		}
	})
	return pl.destroyErr
}
