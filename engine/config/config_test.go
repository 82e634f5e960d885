package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
	"github.com/mverity/smoothcam/engine/camera"
)

func writeProfileFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cameras.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses a full profile set", func(t *testing.T) {
		path := writeProfileFile(t, `
profiles:
  fly:
    policy: fps
    enabled: true
    smoothing_weight: 0.85
    rotate_sensitivity: {x: 0.5, y: 0.25}
    translate_sensitivity: 4.0
  inspect:
    policy: orbit
    orthographic: true
    zoom_sensitivity: 0.3
    pixels_per_line: 60
  editor:
    policy: unreal
    keyboard_sensitivity: 20
`)

		f, err := Load(path)
		require.NoError(t, err)
		require.Len(t, f.Profiles, 3)

		fly := f.Profiles["fly"]
		assert.Equal(t, "fps", fly.Policy)
		require.NotNil(t, fly.SmoothingWeight)
		assert.InDelta(t, 0.85, *fly.SmoothingWeight, 1e-6)
		require.NotNil(t, fly.RotateSensitivity)
		assert.Equal(t, float32(0.5), fly.RotateSensitivity.X)

		inspect := f.Profiles["inspect"]
		assert.True(t, inspect.Orthographic)
		assert.Nil(t, inspect.SmoothingWeight)
	})

	t.Run("rejects a misspelled tuning key", func(t *testing.T) {
		path := writeProfileFile(t, `
profiles:
  fly:
    policy: fps
    rotate_sensitivty: {x: 0.5, y: 0.25}
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rotate_sensitivty")
	})

	t.Run("rejects an unknown policy", func(t *testing.T) {
		path := writeProfileFile(t, `
profiles:
  bad:
    policy: freecam
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, camera.ErrConfigOutOfRange)
	})

	t.Run("rejects an out-of-range smoothing weight", func(t *testing.T) {
		path := writeProfileFile(t, `
profiles:
  bad:
    policy: fps
    smoothing_weight: 1.0
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, camera.ErrConfigOutOfRange)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	weight := float32(0.7)
	f := &File{
		Profiles: map[string]Profile{
			"fly": {
				Policy:          "fps",
				SmoothingWeight: &weight,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, loaded.Profiles, "fly")
	require.NotNil(t, loaded.Profiles["fly"].SmoothingWeight)
	assert.InDelta(t, 0.7, *loaded.Profiles["fly"].SmoothingWeight, 1e-6)
}

func TestProfileBuild(t *testing.T) {
	t.Run("builds a tuned fps controller", func(t *testing.T) {
		weight := float32(0.5)
		translate := float32(8.0)
		p := Profile{
			Policy:               "fps",
			SmoothingWeight:      &weight,
			RotateSensitivity:    &Vec2{X: 0.4, Y: 0.1},
			TranslateSensitivity: &translate,
		}

		ctrl, err := p.Build()
		require.NoError(t, err)
		require.Equal(t, camera.KindFPS, ctrl.Kind())

		fps := ctrl.(camera.FpsController)
		assert.Equal(t, common.Vec2{X: 0.4, Y: 0.1}, fps.RotateSensitivity())
		assert.Equal(t, float32(8.0), fps.TranslateSensitivity())
		assert.Equal(t, float32(0.5), fps.SmoothingWeight())
	})

	t.Run("builds an orthographic orbit controller", func(t *testing.T) {
		p := Profile{Policy: "orbit", Orthographic: true}

		ctrl, err := p.Build()
		require.NoError(t, err)
		orbit := ctrl.(camera.OrbitController)
		assert.True(t, orbit.Orthographic())
	})

	t.Run("invalid profile fails", func(t *testing.T) {
		p := Profile{Policy: "nope"}
		_, err := p.Build()
		assert.ErrorIs(t, err, camera.ErrConfigOutOfRange)
	})
}

func TestProfileApply(t *testing.T) {
	t.Run("retunes an existing controller", func(t *testing.T) {
		ctrl, err := camera.NewUnrealController()
		require.NoError(t, err)

		keyboard := float32(25.0)
		enabled := true
		p := Profile{
			Policy:              "unreal",
			Enabled:             &enabled,
			KeyboardSensitivity: &keyboard,
		}
		require.NoError(t, p.Apply(ctrl))

		assert.True(t, ctrl.Enabled())
		assert.Equal(t, float32(25.0), ctrl.KeyboardSensitivity())
		// Untouched fields keep their defaults.
		assert.Equal(t, float32(camera.DefaultUnrealWheelTranslateSensitivity), ctrl.WheelTranslateSensitivity())
	})

	t.Run("policy mismatch fails", func(t *testing.T) {
		ctrl, err := camera.NewFpsController()
		require.NoError(t, err)

		p := Profile{Policy: "orbit"}
		assert.Error(t, p.Apply(ctrl))
	})

	t.Run("out-of-range value fails", func(t *testing.T) {
		ctrl, err := camera.NewOrbitController()
		require.NoError(t, err)

		zoom := float32(-1.0)
		p := Profile{Policy: "orbit", ZoomSensitivity: &zoom}
		assert.ErrorIs(t, p.Apply(ctrl), camera.ErrConfigOutOfRange)
	})
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cameras.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: {}\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  fly:\n    policy: fps\n"), 0o644))

	select {
	case changed := <-w.Events:
		assert.Equal(t, path, changed)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}
