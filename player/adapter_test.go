package player_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/player/playertest"
)

const (
	videoA = "dQw4w9WgXcQ"
	videoB = "9bZkp7q19f0"
)

// loadAsync starts a Load and returns the channel its result arrives on.
func loadAsync(a *player.Adapter, videoID string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- a.Load(context.Background(), videoID)
	}()
	return done
}

func waitResult(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return")
		return nil
	}
}

func TestAdapter_InitialState(t *testing.T) {
	a := player.NewAdapter(playertest.NewPlatform(), "player")

	assert.Equal(t, player.Uninitialized, a.State())
	assert.False(t, a.Ready())
	assert.False(t, a.PlatformAvailable())
	assert.Equal(t, 0, a.CurrentTime())
	assert.NoError(t, a.Seek(30))

	_, ok := a.VideoInfo()
	assert.False(t, ok)
}

func TestAdapter_LoadReady(t *testing.T) {
	plat := playertest.NewPlatform()
	a := player.NewAdapter(plat, "player")

	done := loadAsync(a, videoA)
	pl := plat.NextPlayer(t)
	assert.Equal(t, player.Loading, a.State())
	assert.Equal(t, "player", pl.Container)
	assert.Equal(t, player.DefaultVars(), pl.Vars)

	pl.Ready()
	require.NoError(t, waitResult(t, done))

	assert.Equal(t, player.Ready, a.State())
	assert.True(t, a.PlatformAvailable())
	assert.Equal(t, videoA, a.VideoID())

	pl.SetTime(75.9)
	assert.Equal(t, 75, a.CurrentTime())

	require.NoError(t, a.Seek(15))
	assert.Equal(t, []float64{15}, pl.Seeks())

	info, ok := a.VideoInfo()
	require.True(t, ok)
	assert.Equal(t, "Video "+videoA, info.Title)
	assert.Equal(t, 212, info.DurationSeconds)
	assert.Equal(t, "03:32", info.DurationText())
	assert.Equal(t, videoA, info.VideoID)
}

func TestAdapter_UnknownTitle(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	a := player.NewAdapter(plat, "player")

	require.NoError(t, a.Load(context.Background(), videoA))
	plat.Players()[0].SetTitle("")

	info, ok := a.VideoInfo()
	require.True(t, ok)
	assert.Equal(t, player.UnknownTitle, info.Title)
}

func TestAdapter_LoadError(t *testing.T) {
	plat := playertest.NewPlatform()
	a := player.NewAdapter(plat, "player")

	done := loadAsync(a, videoA)
	pl := plat.NextPlayer(t)
	pl.Fail(player.ErrCodeNotFound)

	err := waitResult(t, done)
	var initErr *player.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, player.ErrCodeNotFound, initErr.Code)
	assert.Equal(t, player.Error, a.State())
	assert.Equal(t, 0, a.CurrentTime())

	// A ready signal after the failure settles nothing.
	pl.Ready()
	assert.Equal(t, player.Error, a.State())
}

func TestAdapter_ErrorAfterReadyKeepsReady(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	a := player.NewAdapter(plat, "player")

	require.NoError(t, a.Load(context.Background(), videoA))
	plat.Players()[0].Fail(player.ErrCodePlayback)

	assert.Equal(t, player.Ready, a.State())
}

func TestAdapter_OverlappingLoads(t *testing.T) {
	plat := playertest.NewPlatform()
	a := player.NewAdapter(plat, "player")

	first := loadAsync(a, videoA)
	p1 := plat.NextPlayer(t)

	second := loadAsync(a, videoB)
	p2 := plat.NextPlayer(t)

	require.ErrorIs(t, waitResult(t, first), player.ErrSuperseded)
	assert.True(t, p1.Destroyed(), "first player must be torn down before the second is built")

	// The first player's late signals are dropped.
	p1.Ready()
	p1.Fail(player.ErrCodePlayback)
	p1.ChangeState(player.PlaybackPlaying)
	assert.Equal(t, player.Loading, a.State())
	assert.Equal(t, player.PlaybackUnstarted, a.PlaybackState())

	p2.Ready()
	require.NoError(t, waitResult(t, second))

	assert.Equal(t, player.Ready, a.State())
	assert.Equal(t, videoB, a.VideoID())
	live := plat.Live()
	require.Len(t, live, 1)
	assert.Equal(t, videoB, live[0].VideoID)
}

func TestAdapter_SupersededWhileWaitingForPlatform(t *testing.T) {
	plat := playertest.NewPendingPlatform()
	a := player.NewAdapter(plat, "player")

	first := loadAsync(a, videoA)
	require.Eventually(t, func() bool { return plat.Waits() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, player.Loading, a.State())
	assert.False(t, a.PlatformAvailable())

	second := loadAsync(a, videoB)
	require.ErrorIs(t, waitResult(t, first), player.ErrSuperseded)

	plat.MakeAvailable()
	pl := plat.NextPlayer(t)
	assert.Equal(t, videoB, pl.VideoID)
	pl.Ready()
	require.NoError(t, waitResult(t, second))

	assert.Len(t, plat.Players(), 1, "superseded load must not construct a player")
	assert.True(t, a.PlatformAvailable())
}

func TestAdapter_AvailabilityCached(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	a := player.NewAdapter(plat, "player")

	require.NoError(t, a.Load(context.Background(), videoA))
	require.NoError(t, a.Load(context.Background(), videoB))

	assert.Equal(t, 1, plat.Waits())
	assert.Len(t, plat.Live(), 1)
}

func TestAdapter_PlatformUnavailable(t *testing.T) {
	plat := playertest.NewPendingPlatform()
	a := player.NewAdapter(plat, "player")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := a.Load(ctx, videoA)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, player.Error, a.State())
	assert.False(t, a.PlatformAvailable())
}

func TestAdapter_ConstructError(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.NewPlayerErr = errors.New("no display")
	a := player.NewAdapter(plat, "player")

	err := a.Load(context.Background(), videoA)
	var initErr *player.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, player.ErrCodeConstructError, initErr.Code)
	assert.EqualError(t, errors.Unwrap(err), "no display")
	assert.Equal(t, player.Error, a.State())
}

func TestAdapter_ContextEndsWhileLoading(t *testing.T) {
	plat := playertest.NewPlatform()
	a := player.NewAdapter(plat, "player")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Load(ctx, videoA) }()
	pl := plat.NextPlayer(t)

	cancel()
	assert.ErrorIs(t, waitResult(t, done), context.Canceled)
	assert.Equal(t, player.Loading, a.State())

	pl.Ready()
	assert.Equal(t, player.Ready, a.State())
}

func TestAdapter_Close(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	a := player.NewAdapter(plat, "player")

	require.NoError(t, a.Load(context.Background(), videoA))
	pl := plat.Players()[0]

	require.NoError(t, a.Close())
	assert.True(t, pl.Destroyed())
	assert.Equal(t, player.Uninitialized, a.State())
	assert.Empty(t, a.VideoID())

	pl.Ready()
	assert.Equal(t, player.Uninitialized, a.State())
}

func TestAdapter_PlaybackState(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	a := player.NewAdapter(plat, "player")

	require.NoError(t, a.Load(context.Background(), videoA))
	plat.Players()[0].ChangeState(player.PlaybackPaused)

	assert.Equal(t, player.PlaybackPaused, a.PlaybackState())
}

func TestAdapter_WithVars(t *testing.T) {
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	vars := player.Vars{Controls: false}
	a := player.NewAdapter(plat, "player", player.WithVars(vars))

	require.NoError(t, a.Load(context.Background(), videoA))
	assert.Equal(t, vars, plat.Players()[0].Vars)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", player.Uninitialized.String())
	assert.Equal(t, "loading", player.Loading.String())
	assert.Equal(t, "ready", player.Ready.String())
	assert.Equal(t, "error", player.Error.String())
}
