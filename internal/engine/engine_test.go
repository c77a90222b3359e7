package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcheetah777/engine/internal/engine"
	"github.com/thcheetah777/engine/internal/engine/enginetest"
	"github.com/thcheetah777/engine/internal/ranges"
	"github.com/thcheetah777/engine/internal/rng"
)

func newEngine(t *testing.T) (*engine.Engine, *enginetest.FakeHost) {
	t.Helper()
	host := enginetest.NewFakeHost(800, 600)
	e, err := engine.New(host, engine.WithRand(rng.New(1)))
	require.NoError(t, err)
	return e, host
}

func TestNew(t *testing.T) {
	e, _ := newEngine(t)

	assert.Equal(t, 800.0, e.Width())
	assert.Equal(t, 600.0, e.Height())
	assert.Equal(t, 400.0, e.CenterX())
	assert.Equal(t, 300.0, e.CenterY())
	assert.Equal(t, uint64(1), e.Rand().Seed())

	_, err := engine.New(nil)
	assert.ErrorIs(t, err, engine.ErrNoHost)
}

func TestNewDefaultsRand(t *testing.T) {
	e, err := engine.New(enginetest.NewFakeHost(10, 10))
	require.NoError(t, err)
	assert.NotNil(t, e.Rand())
}

func TestRandomHelpers(t *testing.T) {
	e, _ := newEngine(t)

	for i := 0; i < 500; i++ {
		v := e.RandomBetween(-5, 5)
		require.GreaterOrEqual(t, v, -5.0)
		require.Less(t, v, 5.0)

		r := e.RoundRandomBetween(3, 4)
		require.Contains(t, []int{3, 4}, r)

		p := e.RandomPercentage()
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
	}

	_ = e.RandomBool()

	idx, ok := e.PercentageCheck([]ranges.Interval{{Low: 0, High: 20}, {Low: 20, High: 50}, {Low: 50, High: 100}}, 20)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestTrackPointer(t *testing.T) {
	e, host := newEngine(t)

	ps := e.TrackPointer()
	assert.False(t, ps.Down())
	assert.Equal(t, 1, host.FakeInput.ListenerCount(engine.PointerDown))
	assert.Equal(t, 1, host.FakeInput.ListenerCount(engine.PointerUp))

	host.FakeInput.Emit(engine.PointerDown)
	assert.True(t, ps.Down())

	host.FakeInput.Emit(engine.PointerUp)
	assert.False(t, ps.Down())

	ps.Close()
	assert.Equal(t, 0, host.FakeInput.ListenerCount(engine.PointerDown))
	assert.Equal(t, 0, host.FakeInput.ListenerCount(engine.PointerUp))

	host.FakeInput.Emit(engine.PointerDown)
	assert.False(t, ps.Down(), "closed observer must not react")

	ps.Close()
}

func TestAddAnimation(t *testing.T) {
	tests := []struct {
		name       string
		repeat     bool
		yoyo       bool
		keys       []string
		wantRepeat int
		wantErr    error
	}{
		{name: "looping", repeat: true, yoyo: true, keys: []string{"walk1", "walk2", "walk3"}, wantRepeat: -1},
		{name: "play once", repeat: false, keys: []string{"hit"}, wantRepeat: 0},
		{name: "no frames", keys: nil, wantErr: engine.ErrNoFrames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, host := newEngine(t)

			err := e.AddAnimation(tt.name, 12, tt.repeat, tt.yoyo, tt.keys...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, host.FakeAnims.Created)
				return
			}
			require.NoError(t, err)
			require.Len(t, host.FakeAnims.Created, 1)

			cfg := host.FakeAnims.Created[0]
			assert.Equal(t, tt.name, cfg.Key)
			assert.Equal(t, 12.0, cfg.FrameRate)
			assert.Equal(t, tt.wantRepeat, cfg.Repeat)
			assert.Equal(t, tt.yoyo, cfg.Yoyo)
			require.Len(t, cfg.Frames, len(tt.keys))
			for i, k := range tt.keys {
				assert.Equal(t, k, cfg.Frames[i].Key)
			}
		})
	}
}

func TestAddAnimationHostError(t *testing.T) {
	e, host := newEngine(t)
	hostErr := errors.New("duplicate key")
	host.FakeAnims.Err = hostErr

	err := e.AddAnimation("idle", 8, true, false, "idle1")
	assert.ErrorIs(t, err, hostErr)
}

func TestSetBackgroundColor(t *testing.T) {
	e, host := newEngine(t)

	require.NoError(t, e.SetBackgroundColor("#ff8800"))
	require.NoError(t, e.SetBackgroundColor("0a0b0c"))
	require.NoError(t, e.SetBackgroundColor("#fff"))
	assert.Equal(t, []engine.Color{
		{R: 0xff, G: 0x88, B: 0x00},
		{R: 0x0a, G: 0x0b, B: 0x0c},
		{R: 0xff, G: 0xff, B: 0xff},
	}, host.FakeCamera.Background)

	err := e.SetBackgroundColor("not-a-color")
	assert.ErrorIs(t, err, engine.ErrInvalidColor)
	assert.Len(t, host.FakeCamera.Background, 3)
}

func TestColorHex(t *testing.T) {
	c, err := engine.ParseColor("#12ABef")
	require.NoError(t, err)
	assert.Equal(t, "#12abef", c.Hex())
}

func TestEvery(t *testing.T) {
	e, host := newEngine(t)

	calls := 0
	timer := e.Every(100*time.Millisecond, func() { calls++ })

	require.Len(t, host.FakeClock.Timers, 1)
	assert.Equal(t, -1, host.FakeClock.Timers[0].Config.Repeat)
	assert.Equal(t, 100*time.Millisecond, host.FakeClock.Timers[0].Config.Delay)

	host.FakeClock.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, calls)

	timer.Remove()
	host.FakeClock.Advance(time.Second)
	assert.Equal(t, 3, calls)
}

func TestIsKeyDown(t *testing.T) {
	e, host := newEngine(t)

	down, err := e.IsKeyDown("SPACE")
	require.NoError(t, err)
	assert.False(t, down)

	host.FakeKeys.Press(32)
	down, err = e.IsKeyDown("space")
	require.NoError(t, err)
	assert.True(t, down)

	host.FakeKeys.Press('W')
	down, err = e.IsKeyDown("W")
	require.NoError(t, err)
	assert.True(t, down)

	_, err = e.IsKeyDown("HYPER")
	assert.ErrorIs(t, err, engine.ErrUnknownKey)
}

func TestLookupKey(t *testing.T) {
	tests := map[string]engine.KeyCode{
		"A":     65,
		"z":     90,
		"ENTER": 13,
		"LEFT":  37,
		"NINE":  57,
		" esc ": 27,
		"F12":   123,
	}
	for name, want := range tests {
		code, err := engine.LookupKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, code, name)
	}
}
