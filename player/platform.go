package player

import "context"

// Error codes reported through Events.OnError. They follow the numbering of the
// embedded web player so codes read the same whatever platform produced them.
const (
	ErrCodeInvalidParam   = 2
	ErrCodePlayback       = 5
	ErrCodeNotFound       = 100
	ErrCodeUnavailable    = -1
	ErrCodeConstructError = -2
)

// Playback state codes reported through Events.OnStateChange.
const (
	PlaybackUnstarted = -1
	PlaybackEnded     = 0
	PlaybackPlaying   = 1
	PlaybackPaused    = 2
	PlaybackBuffering = 3
)

// Platform is the external video player library.
type Platform interface {
	// WaitAvailable blocks until the platform library itself can construct players.
	WaitAvailable(ctx context.Context) error
	// NewPlayer constructs a player bound to container and starts loading videoID.
	// Readiness and failures are reported later through events, possibly from another goroutine.
	NewPlayer(container, videoID string, vars Vars, events Events) (Instance, error)
}

// Instance is one live player created by a Platform.
type Instance interface {
	CurrentTime() (float64, error)
	Duration() (float64, error)
	VideoData() (VideoData, error)
	SeekTo(seconds float64, allowSeekAhead bool) error
	Destroy() error
}

// Events are the callbacks a Platform invokes for an Instance.
type Events struct {
	OnReady       func()
	OnError       func(code int)
	OnStateChange func(code int)
}

// VideoData is metadata reported by the platform for the loaded video.
type VideoData struct {
	Title string
}

// Vars are the player construction options.
type Vars struct {
	PlaysInline    bool
	Related        bool
	ModestBranding bool
	Controls       bool
}

// DefaultVars returns inline playback with controls and no related videos.
func DefaultVars() Vars {
	return Vars{
		PlaysInline:    true,
		Related:        false,
		ModestBranding: true,
		Controls:       true,
	}
}
