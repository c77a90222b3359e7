package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcheetah777/engine/internal/engine"
	"github.com/thcheetah777/engine/internal/engine/enginetest"
)

func testConfig() CutsceneConfig {
	return CutsceneConfig{
		Key:       "intro",
		Left:      "assets/knight.png",
		Right:     "assets/ogre.png",
		Versus:    "assets/vs.png",
		NextScene: "arena",
	}
}

func createCutscene(t *testing.T) (*Cutscene, *enginetest.FakeHost) {
	t.Helper()
	c, err := NewCutscene(testConfig())
	require.NoError(t, err)

	host := enginetest.NewFakeHost(1200, 600)
	c.Preload(host.FakeLoader)
	require.NoError(t, c.Create(host))
	return c, host
}

func TestNewCutsceneValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CutsceneConfig)
	}{
		{name: "missing key", modify: func(c *CutsceneConfig) { c.Key = "" }},
		{name: "missing left", modify: func(c *CutsceneConfig) { c.Left = "" }},
		{name: "missing versus", modify: func(c *CutsceneConfig) { c.Versus = "" }},
		{name: "missing next scene", modify: func(c *CutsceneConfig) { c.NextScene = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			_, err := NewCutscene(cfg)
			assert.Error(t, err)
		})
	}
}

func TestCutscenePreload(t *testing.T) {
	c, err := NewCutscene(testConfig())
	require.NoError(t, err)

	host := enginetest.NewFakeHost(1200, 600)
	c.Preload(host.FakeLoader)

	assert.Equal(t, map[string]string{
		"assets/knight.png": "assets/knight.png",
		"assets/ogre.png":   "assets/ogre.png",
		"assets/vs.png":     "assets/vs.png",
	}, host.FakeLoader.Images)
}

func TestCutsceneLayout(t *testing.T) {
	_, host := createCutscene(t)

	require.Len(t, host.FakePhys.Sprites, 3)
	left, right, versus := host.FakePhys.Sprites[0], host.FakePhys.Sprites[1], host.FakePhys.Sprites[2]

	assert.Equal(t, -128.0, left.X())
	assert.Equal(t, 236.0, left.Y())
	assert.Equal(t, 1328.0, right.X())
	assert.Equal(t, 236.0, right.Y())
	assert.Equal(t, 600.0, versus.X())
	assert.Equal(t, -128.0, versus.Y())
	for _, s := range host.FakePhys.Sprites {
		assert.True(t, s.Config.Static)
		assert.Equal(t, float64(CutsceneSpriteScale), s.Scale())
	}

	require.Len(t, host.FakeTweens.Added, 3)
	for _, tw := range host.FakeTweens.Added {
		assert.Equal(t, CutsceneTweenEase, tw.Config.Ease)
		assert.Equal(t, CutsceneTweenTime, tw.Config.Duration)
	}
}

func TestCutsceneSequence(t *testing.T) {
	c, host := createCutscene(t)
	tweens := host.FakeTweens.Added
	rightTween, vsTween, leftTween := tweens[0], tweens[1], tweens[2]

	assert.Equal(t, PhaseLeftEntering, c.Phase())
	assert.True(t, leftTween.Playing)
	assert.False(t, vsTween.Playing)
	assert.False(t, rightTween.Playing)

	leftTween.Finish()
	assert.Equal(t, PhaseVersusDropping, c.Phase())
	assert.True(t, vsTween.Playing)
	assert.False(t, rightTween.Playing)

	vsTween.Finish()
	assert.Equal(t, PhaseRightEntering, c.Phase())
	assert.True(t, rightTween.Playing)

	rightTween.Finish()
	assert.Equal(t, PhaseComplete, c.Phase())

	left, right, versus := host.FakePhys.Sprites[0], host.FakePhys.Sprites[1], host.FakePhys.Sprites[2]
	assert.Equal(t, 272.0, left.X())
	assert.Equal(t, 928.0, right.X())
	assert.Equal(t, 236.0, versus.Y())
}

func TestCutsceneClickBeforeCompleteIsIgnored(t *testing.T) {
	c, host := createCutscene(t)

	host.FakeInput.Click()
	assert.Empty(t, host.FakeScenes.Started)
	assert.Equal(t, 0, host.FakeScenes.Stopped)

	host.FakeTweens.Added[2].Finish()
	host.FakeInput.Click()
	assert.Empty(t, host.FakeScenes.Started)
	assert.Equal(t, PhaseVersusDropping, c.Phase())
}

func TestCutsceneTransitionsOnce(t *testing.T) {
	c, host := createCutscene(t)

	host.FakeTweens.RunAll()
	require.Equal(t, PhaseComplete, c.Phase())

	host.FakeInput.Click()
	assert.Equal(t, []string{"arena"}, host.FakeScenes.Started)
	assert.Equal(t, 1, host.FakeScenes.Stopped)
	assert.Equal(t, PhaseDone, c.Phase())

	host.FakeInput.Click()
	assert.Equal(t, []string{"arena"}, host.FakeScenes.Started)
	assert.Equal(t, 1, host.FakeScenes.Stopped)
}

func TestCutsceneClose(t *testing.T) {
	c, host := createCutscene(t)
	require.Equal(t, 1, host.FakeInput.ListenerCount(engine.PointerDown))

	c.Close()
	assert.Equal(t, 0, host.FakeInput.ListenerCount(engine.PointerDown))

	host.FakeTweens.RunAll()
	host.FakeInput.Click()
	assert.Empty(t, host.FakeScenes.Started)

	c.Close()
}

func TestCutsceneCreateTwice(t *testing.T) {
	c, host := createCutscene(t)
	assert.Error(t, c.Create(host))
}

func TestCutscenePhaseString(t *testing.T) {
	assert.Equal(t, "complete", PhaseComplete.String())
	assert.Equal(t, "unknown", CutscenePhase(99).String())
}
