// Package playertest provides a scriptable player.Platform for tests.
//
// Players never signal on their own: tests call Ready, Fail or ChangeState to fire the
// callbacks the adapter registered, including on players that were already destroyed.
package playertest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/user/vidnotes/player"
)

// ErrDestroyed is returned by methods of a destroyed Player.
var ErrDestroyed = errors.New("playertest: player destroyed")

// Platform is a fake player.Platform.
type Platform struct {
	// NewPlayerErr, when set, makes NewPlayer fail.
	NewPlayerErr error
	// AutoReady fires OnReady from inside NewPlayer.
	AutoReady bool

	mu        sync.Mutex
	available chan struct{}
	once      sync.Once
	waits     int
	players   []*Player
	created   chan *Player
}

// NewPlatform returns a platform that is available immediately.
func NewPlatform() *Platform {
	p := NewPendingPlatform()
	p.MakeAvailable()
	return p
}

// NewPendingPlatform returns a platform that blocks WaitAvailable until MakeAvailable.
func NewPendingPlatform() *Platform {
	return &Platform{
		available: make(chan struct{}),
		created:   make(chan *Player, 32),
	}
}

// MakeAvailable releases every WaitAvailable call.
func (p *Platform) MakeAvailable() {
	p.once.Do(func() { close(p.available) })
}

// WaitAvailable implements player.Platform.
func (p *Platform) WaitAvailable(ctx context.Context) error {
	p.mu.Lock()
	p.waits++
	p.mu.Unlock()
	select {
	case <-p.available:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Waits returns how many times WaitAvailable was called.
func (p *Platform) Waits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}

// NewPlayer implements player.Platform.
func (p *Platform) NewPlayer(container, videoID string, vars player.Vars, events player.Events) (player.Instance, error) {
	if p.NewPlayerErr != nil {
		return nil, p.NewPlayerErr
	}

	pl := &Player{
		Container: container,
		VideoID:   videoID,
		Vars:      vars,
		events:    events,
		title:     "Video " + videoID,
		duration:  212.5,
	}

	p.mu.Lock()
	p.players = append(p.players, pl)
	p.mu.Unlock()
	p.created <- pl

	if p.AutoReady {
		pl.Ready()
	}
	return pl, nil
}

// Players returns every player constructed so far, oldest first.
func (p *Platform) Players() []*Player {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Player, len(p.players))
	copy(out, p.players)
	return out
}

// Live returns the players that have not been destroyed.
func (p *Platform) Live() []*Player {
	var live []*Player
	for _, pl := range p.Players() {
		if !pl.Destroyed() {
			live = append(live, pl)
		}
	}
	return live
}

// NextPlayer waits for the next constructed player.
func (p *Platform) NextPlayer(t testing.TB) *Player {
	t.Helper()
	select {
	case pl := <-p.created:
		return pl
	case <-time.After(2 * time.Second):
		t.Fatalf("playertest: no player constructed")
		return nil
	}
}

// Player is a fake player.Instance.
type Player struct {
	Container string
	VideoID   string
	Vars      player.Vars

	events player.Events

	mu        sync.Mutex
	time      float64
	duration  float64
	title     string
	seeks     []float64
	destroyed bool
}

// Ready fires the OnReady callback.
func (pl *Player) Ready() {
	pl.events.OnReady()
}

// Fail fires the OnError callback with code.
func (pl *Player) Fail(code int) {
	pl.events.OnError(code)
}

// ChangeState fires the OnStateChange callback with code.
func (pl *Player) ChangeState(code int) {
	pl.events.OnStateChange(code)
}

// SetTime sets the playback position reported by CurrentTime.
func (pl *Player) SetTime(seconds float64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.time = seconds
}

// SetTitle sets the title reported by VideoData.
func (pl *Player) SetTitle(title string) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.title = title
}

// Seeks returns every position passed to SeekTo.
func (pl *Player) Seeks() []float64 {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	out := make([]float64, len(pl.seeks))
	copy(out, pl.seeks)
	return out
}

// Destroyed reports whether Destroy was called.
func (pl *Player) Destroyed() bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.destroyed
}

// CurrentTime implements player.Instance.
func (pl *Player) CurrentTime() (float64, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.destroyed {
		return 0, ErrDestroyed
	}
	return pl.time, nil
}

// Duration implements player.Instance.
func (pl *Player) Duration() (float64, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.destroyed {
		return 0, ErrDestroyed
	}
	return pl.duration, nil
}

// VideoData implements player.Instance.
func (pl *Player) VideoData() (player.VideoData, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.destroyed {
		return player.VideoData{}, ErrDestroyed
	}
	return player.VideoData{Title: pl.title}, nil
}

// SeekTo implements player.Instance.
func (pl *Player) SeekTo(seconds float64, allowSeekAhead bool) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.destroyed {
		return ErrDestroyed
	}
	pl.seeks = append(pl.seeks, seconds)
	pl.time = seconds
	return nil
}

// Destroy implements player.Instance.
func (pl *Player) Destroy() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.destroyed = true
	return nil
}
