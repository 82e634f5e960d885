// Package config loads camera controller profiles from YAML, applies them to
// live controllers, and optionally hot-reloads them when the file changes on
// disk. A profile names a controller policy and overrides whichever tuning
// values it lists; values left out keep the controller's defaults.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mverity/smoothcam/common"
	"github.com/mverity/smoothcam/engine/camera"
)

// Vec2 is a two-component sensitivity value as it appears in YAML.
type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Profile describes one controller configuration. Only Policy is required;
// every other field is optional and overrides the controller default when set.
type Profile struct {
	// Policy selects the controller: "fps", "orbit", or "unreal".
	Policy string `yaml:"policy"`

	Enabled         *bool    `yaml:"enabled,omitempty"`
	SmoothingWeight *float32 `yaml:"smoothing_weight,omitempty"`

	// RotateSensitivity applies to all policies.
	RotateSensitivity *Vec2 `yaml:"rotate_sensitivity,omitempty"`

	// TranslateSensitivity applies to the fps policy.
	TranslateSensitivity *float32 `yaml:"translate_sensitivity,omitempty"`

	// PanSensitivity, ZoomSensitivity, and Orthographic apply to the orbit policy.
	PanSensitivity  *Vec2    `yaml:"pan_sensitivity,omitempty"`
	ZoomSensitivity *float32 `yaml:"zoom_sensitivity,omitempty"`
	Orthographic    bool     `yaml:"orthographic,omitempty"`

	// PixelsPerLine applies to the orbit and unreal policies.
	PixelsPerLine *float32 `yaml:"pixels_per_line,omitempty"`

	// The remaining fields apply to the unreal policy.
	MouseTranslateSensitivity *Vec2    `yaml:"mouse_translate_sensitivity,omitempty"`
	WheelTranslateSensitivity *float32 `yaml:"wheel_translate_sensitivity,omitempty"`
	KeyboardSensitivity       *float32 `yaml:"keyboard_sensitivity,omitempty"`
	KeyboardWheelSensitivity  *float32 `yaml:"keyboard_wheel_sensitivity,omitempty"`
}

// File is the root of a controller profile YAML document: named profiles
// keyed by an arbitrary identifier chosen by the application.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and parses a controller profile file. Unknown YAML fields are
// rejected so typos in tuning keys surface immediately instead of silently
// keeping defaults.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *File: the parsed profiles
//   - error: an error if the file cannot be read, parsed, or validated
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the profiles back to disk as YAML.
//
// Parameters:
//   - path: destination file path
//
// Returns:
//   - error: an error if the file cannot be written
func (f *File) Save(path string) error {
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks every profile for a known policy and in-range tuning
// values. Range checks mirror the controller setters so a bad file is
// rejected at load time rather than when it is first applied.
//
// Returns:
//   - error: the first validation failure found, or nil
func (f *File) Validate() error {
	for name, p := range f.Profiles {
		if err := p.validate(); err != nil {
			return fmt.Errorf("config: profile %q: %w", name, err)
		}
	}
	return nil
}

func (p *Profile) validate() error {
	switch p.Policy {
	case "fps", "orbit", "unreal":
	default:
		return fmt.Errorf("%w: unknown policy %q", camera.ErrConfigOutOfRange, p.Policy)
	}
	if p.SmoothingWeight != nil && (*p.SmoothingWeight < 0 || *p.SmoothingWeight >= 1) {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", camera.ErrConfigOutOfRange, *p.SmoothingWeight)
	}
	return nil
}

// Build constructs a new controller from the profile.
//
// Returns:
//   - camera.Controller: the configured controller
//   - error: an error if the profile is invalid
func (p *Profile) Build() (camera.Controller, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var ctrl camera.Controller
	var err error
	switch p.Policy {
	case "fps":
		ctrl, err = camera.NewFpsController()
	case "orbit":
		if p.Orthographic {
			ctrl, err = camera.NewOrbitController(camera.WithOrthographicZoom())
		} else {
			ctrl, err = camera.NewOrbitController()
		}
	case "unreal":
		ctrl, err = camera.NewUnrealController()
	}
	if err != nil {
		return nil, err
	}

	if err := p.Apply(ctrl); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// Apply pushes the profile's set fields onto an existing controller. The
// controller's policy must match the profile's.
//
// Parameters:
//   - ctrl: the controller to retune
//
// Returns:
//   - error: an error if the policies mismatch or a value is out of range
func (p *Profile) Apply(ctrl camera.Controller) error {
	if ctrl.Kind().String() != p.Policy {
		return fmt.Errorf("config: profile policy %q does not match controller %q", p.Policy, ctrl.Kind())
	}

	if p.Enabled != nil {
		ctrl.SetEnabled(*p.Enabled)
	}

	switch c := ctrl.(type) {
	case camera.FpsController:
		if p.SmoothingWeight != nil {
			if err := c.SetSmoothingWeight(*p.SmoothingWeight); err != nil {
				return err
			}
		}
		if p.RotateSensitivity != nil {
			if err := c.SetRotateSensitivity(common.Vec2{X: p.RotateSensitivity.X, Y: p.RotateSensitivity.Y}); err != nil {
				return err
			}
		}
		if p.TranslateSensitivity != nil {
			if err := c.SetTranslateSensitivity(*p.TranslateSensitivity); err != nil {
				return err
			}
		}
	case camera.OrbitController:
		if p.SmoothingWeight != nil {
			if err := c.SetSmoothingWeight(*p.SmoothingWeight); err != nil {
				return err
			}
		}
		if p.RotateSensitivity != nil {
			if err := c.SetRotateSensitivity(common.Vec2{X: p.RotateSensitivity.X, Y: p.RotateSensitivity.Y}); err != nil {
				return err
			}
		}
		if p.PanSensitivity != nil {
			if err := c.SetTranslateSensitivity(common.Vec2{X: p.PanSensitivity.X, Y: p.PanSensitivity.Y}); err != nil {
				return err
			}
		}
		if p.ZoomSensitivity != nil {
			if err := c.SetZoomSensitivity(*p.ZoomSensitivity); err != nil {
				return err
			}
		}
		if p.PixelsPerLine != nil {
			if err := c.SetPixelsPerLine(*p.PixelsPerLine); err != nil {
				return err
			}
		}
	case camera.UnrealController:
		if p.SmoothingWeight != nil {
			if err := c.SetSmoothingWeight(*p.SmoothingWeight); err != nil {
				return err
			}
		}
		if p.RotateSensitivity != nil {
			if err := c.SetRotateSensitivity(common.Vec2{X: p.RotateSensitivity.X, Y: p.RotateSensitivity.Y}); err != nil {
				return err
			}
		}
		if p.MouseTranslateSensitivity != nil {
			if err := c.SetMouseTranslateSensitivity(common.Vec2{X: p.MouseTranslateSensitivity.X, Y: p.MouseTranslateSensitivity.Y}); err != nil {
				return err
			}
		}
		if p.WheelTranslateSensitivity != nil {
			if err := c.SetWheelTranslateSensitivity(*p.WheelTranslateSensitivity); err != nil {
				return err
			}
		}
		if p.KeyboardSensitivity != nil {
			if err := c.SetKeyboardSensitivity(*p.KeyboardSensitivity); err != nil {
				return err
			}
		}
		if p.KeyboardWheelSensitivity != nil {
			if err := c.SetKeyboardWheelSensitivity(*p.KeyboardWheelSensitivity); err != nil {
				return err
			}
		}
		if p.PixelsPerLine != nil {
			if err := c.SetPixelsPerLine(*p.PixelsPerLine); err != nil {
				return err
			}
		}
	}

	return nil
}
