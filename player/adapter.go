// Package player adapts an asynchronous, callback-driven video player platform into
// a readiness state machine with time queries and seeking.
package player

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/pkg/timeutil"
)

// UnknownTitle is reported when the platform has no title for the loaded video.
const UnknownTitle = "Unknown Title"

// State is the adapter lifecycle state.
type State int

const (
	// Uninitialized means no load has been requested (or the player was closed).
	Uninitialized State = iota
	// Loading means a load is pending readiness.
	Loading
	// Ready means the player accepts time queries and seeks.
	Ready
	// Error means the last load failed.
	Error
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// VideoInfo describes the loaded video.
type VideoInfo struct {
	Title           string
	DurationSeconds int
	VideoID         string
}

// DurationText returns the duration as MM:SS or HH:MM:SS.
func (v VideoInfo) DurationText() string {
	return timeutil.FormatTimestamp(v.DurationSeconds)
}

// Adapter owns at most one live platform player at a time.
//
// Every Load bumps a generation counter; callbacks registered by an older generation
// are dropped when they fire, so a torn-down player can never move the state machine.
type Adapter struct {
	platform  Platform
	container string
	vars      Vars

	// buildMu serializes teardown and construction of instances.
	buildMu sync.Mutex

	mu         sync.Mutex
	state      State
	generation uint64
	instance   Instance
	videoID    string
	pending    chan error
	playback   int

	available atomic.Bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithVars sets the construction options passed to every player.
func WithVars(vars Vars) Option {
	return func(a *Adapter) {
		a.vars = vars
	}
}

// NewAdapter creates an adapter that builds players in container using platform.
func NewAdapter(platform Platform, container string, opts ...Option) *Adapter {
	a := &Adapter{
		platform:  platform,
		container: container,
		vars:      DefaultVars(),
		playback:  PlaybackUnstarted,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load replaces any current player with a new one for videoID and blocks until it is
// ready, fails, is superseded by another Load, or ctx is done.
//
// The adapter is in Loading as soon as Load is called. If ctx ends while waiting for
// readiness the adapter stays in Loading and the player's eventual signal still settles it.
func (a *Adapter) Load(ctx context.Context, videoID string) error {
	a.buildMu.Lock()
	a.mu.Lock()
	old := a.detachLocked()
	a.generation++
	gen := a.generation
	a.state = Loading
	a.videoID = videoID
	a.playback = PlaybackUnstarted
	result := make(chan error, 1)
	a.pending = result
	a.mu.Unlock()
	a.destroy(old)
	a.buildMu.Unlock()

	logger.Log.Debug().
		Str("video_id", videoID).
		Uint64("generation", gen).
		Msg("player loading")

	// A newer Load must release this one even while the platform is still unavailable.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	available := make(chan error, 1)
	go func() {
		available <- a.waitAvailable(waitCtx)
	}()

	select {
	case err := <-result:
		return err
	case err := <-available:
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				a.settle(gen, Error, ctxErr)
			} else {
				a.settle(gen, Error, &InitError{Code: ErrCodeUnavailable, Err: err})
			}
			return <-result
		}
	}

	a.buildMu.Lock()
	a.mu.Lock()
	current := gen == a.generation
	a.mu.Unlock()
	if !current {
		a.buildMu.Unlock()
		return <-result
	}

	inst, err := a.platform.NewPlayer(a.container, videoID, a.vars, a.events(gen))
	if err != nil {
		a.buildMu.Unlock()
		a.settle(gen, Error, &InitError{Code: ErrCodeConstructError, Err: err})
		return <-result
	}

	a.mu.Lock()
	a.instance = inst
	a.mu.Unlock()
	a.buildMu.Unlock()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close destroys the live player, if any, and returns the adapter to Uninitialized.
// A pending Load fails with ErrSuperseded.
func (a *Adapter) Close() error {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	a.mu.Lock()
	old := a.detachLocked()
	a.generation++
	a.state = Uninitialized
	a.videoID = ""
	a.playback = PlaybackUnstarted
	a.mu.Unlock()

	if old == nil {
		return nil
	}
	return old.Destroy()
}

// State returns the current lifecycle state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Ready reports whether the player accepts time queries and seeks.
func (a *Adapter) Ready() bool {
	return a.State() == Ready
}

// PlatformAvailable reports whether the platform library has become available.
// Once true it stays true.
func (a *Adapter) PlatformAvailable() bool {
	return a.available.Load()
}

// VideoID returns the id of the video most recently requested with Load.
func (a *Adapter) VideoID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.videoID
}

// PlaybackState returns the last playback state code reported by the player.
func (a *Adapter) PlaybackState() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playback
}

// CurrentTime returns the playback position in whole seconds, or 0 when not ready.
func (a *Adapter) CurrentTime() int {
	inst, ok := a.readyInstance()
	if !ok {
		return 0
	}
	t, err := inst.CurrentTime()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("player current time")
		return 0
	}
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	return int(math.Floor(t))
}

// Seek moves playback to seconds. It does nothing when not ready; seeking past the
// end is left to the platform.
func (a *Adapter) Seek(seconds int) error {
	inst, ok := a.readyInstance()
	if !ok {
		return nil
	}
	return inst.SeekTo(float64(seconds), true)
}

// VideoInfo returns metadata for the loaded video. ok is false when not ready.
func (a *Adapter) VideoInfo() (info VideoInfo, ok bool) {
	a.mu.Lock()
	inst := a.instance
	ready := a.state == Ready && inst != nil
	info.VideoID = a.videoID
	a.mu.Unlock()
	if !ready {
		return VideoInfo{}, false
	}

	info.Title = UnknownTitle
	if data, err := inst.VideoData(); err != nil {
		logger.Log.Warn().Err(err).Msg("player video data")
	} else if data.Title != "" {
		info.Title = data.Title
	}

	if d, err := inst.Duration(); err != nil {
		logger.Log.Warn().Err(err).Msg("player duration")
	} else if d > 0 && !math.IsNaN(d) {
		info.DurationSeconds = int(math.Floor(d))
	}

	return info, true
}

func (a *Adapter) readyInstance() (Instance, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Ready || a.instance == nil {
		return nil, false
	}
	return a.instance, true
}

// waitAvailable resolves the platform-availability precondition, caching success.
func (a *Adapter) waitAvailable(ctx context.Context) error {
	if a.available.Load() {
		return nil
	}
	if err := a.platform.WaitAvailable(ctx); err != nil {
		return err
	}
	if !a.available.Swap(true) {
		logger.Log.Debug().Msg("player platform available")
	}
	return nil
}

func (a *Adapter) events(gen uint64) Events {
	return Events{
		OnReady: func() {
			if a.settle(gen, Ready, nil) {
				logger.Log.Info().Uint64("generation", gen).Msg("player ready")
				return
			}
			logger.Log.Debug().Uint64("generation", gen).Msg("dropped ready signal")
		},
		OnError: func(code int) {
			a.handleError(gen, code)
		},
		OnStateChange: func(code int) {
			a.mu.Lock()
			defer a.mu.Unlock()
			if gen != a.generation {
				return
			}
			a.playback = code
			logger.Log.Debug().Int("code", code).Msg("player state changed")
		},
	}
}

func (a *Adapter) handleError(gen uint64, code int) {
	if a.settle(gen, Error, &InitError{Code: code}) {
		logger.Log.Error().Int("code", code).Uint64("generation", gen).Msg("player failed to load")
		return
	}

	a.mu.Lock()
	stale := gen != a.generation
	a.mu.Unlock()
	if stale {
		logger.Log.Debug().Int("code", code).Uint64("generation", gen).Msg("dropped error signal")
		return
	}
	logger.Log.Warn().Int("code", code).Msg("player error after load")
}

// settle resolves the pending load of generation gen exactly once. It reports false
// when gen is stale or the load already settled.
func (a *Adapter) settle(gen uint64, state State, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation || a.pending == nil {
		return false
	}
	a.state = state
	a.pending <- err
	a.pending = nil
	return true
}

// detachLocked fails any pending load and hands back the live instance for destruction.
func (a *Adapter) detachLocked() Instance {
	if a.pending != nil {
		a.pending <- ErrSuperseded
		a.pending = nil
	}
	inst := a.instance
	a.instance = nil
	return inst
}

func (a *Adapter) destroy(inst Instance) {
	if inst == nil {
		return
	}
	if err := inst.Destroy(); err != nil {
		logger.Log.Warn().Err(err).Msg("destroy player")
	}
}
