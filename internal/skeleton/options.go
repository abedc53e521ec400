package skeleton

import (
	"skelviz/internal/config"
	"skelviz/internal/debugdraw"
)

// Options controls which primitive classes the visualization emits and their
// styling. Process-wide: replaced whole through System.SetOptions and read
// every frame on the single render goroutine, so no locking applies.
type Options struct {
	Enabled     bool
	DrawJoints  bool
	DrawBones   bool
	DrawAxes    bool
	JointRadius float64
	RootScale   float64
	BorderWidth float64
	BoneColor   debugdraw.RGB
	RootColor   debugdraw.RGB
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Defaults().Draw)
}

// OptionsFromConfig seeds runtime options from the config file section.
func OptionsFromConfig(c config.DrawConfig) Options {
	return Options{
		Enabled:     c.Enabled,
		DrawJoints:  c.Joints,
		DrawBones:   c.Bones,
		DrawAxes:    c.Axes,
		JointRadius: c.JointRadius,
		RootScale:   c.RootScale,
		BorderWidth: c.BorderWidth,
		BoneColor:   debugdraw.RGB{R: c.BoneColor[0], G: c.BoneColor[1], B: c.BoneColor[2]},
		RootColor:   debugdraw.RGB{R: c.RootColor[0], G: c.RootColor[1], B: c.RootColor[2]},
	}
}
