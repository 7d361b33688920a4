package tilevis

import (
	"log/slog"

	"github.com/gogpu/tilevis/internal/lighting"
)

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Stock lighting constants, package logger
//	eng := tilevis.New(table)
//
//	// Darker fog-of-war and a per-engine logger
//	t := tilevis.DefaultTuning()
//	t.RevealedBrightness = 12
//	eng := tilevis.New(table, tilevis.WithTuning(t), tilevis.WithLogger(log))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	tuning Tuning
	logger *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		tuning: DefaultTuning(),
		logger: nil, // falls back to the package logger
	}
}

// Tuning holds the lighting constants. The defaults are the values the
// fog-of-war and lighting feel was built around; change them only when the
// host explicitly wants a different look.
type Tuning struct {
	// LightRatio divides the internal light scale down to 0-255 brightness.
	// A radial light of intensity 255*LightRatio reads as full brightness.
	LightRatio int32

	// RevealThreshold is the accumulated light at or above which a lit,
	// unshadowed tile becomes part of the RevealMap.
	RevealThreshold int32

	// RevealedBrightness is the brightness floor of a revealed tile.
	RevealedBrightness int32

	// ShadowedPenalty lowers the revealed floor for shadow-painted,
	// non-opaque tiles.
	ShadowedPenalty int32
}

// DefaultTuning returns the stock lighting constants.
func DefaultTuning() Tuning {
	p := lighting.DefaultParams()
	return Tuning{
		LightRatio:         p.Ratio,
		RevealThreshold:    p.RevealThreshold,
		RevealedBrightness: p.RevealedBrightness,
		ShadowedPenalty:    p.ShadowedPenalty,
	}
}

// valid reports whether the tuning can drive the lighting model.
func (t Tuning) valid() bool {
	return t.LightRatio > 0 && t.RevealedBrightness >= 0 && t.ShadowedPenalty >= 0
}

func (t Tuning) params() lighting.Params {
	return lighting.Params{
		Ratio:              t.LightRatio,
		RevealThreshold:    t.RevealThreshold,
		RevealedBrightness: t.RevealedBrightness,
		ShadowedPenalty:    t.ShadowedPenalty,
	}
}

// WithTuning replaces the lighting constants. An invalid Tuning (non-positive
// LightRatio, negative floor or penalty) is rejected at New with a warning
// and the defaults are kept.
func WithTuning(t Tuning) Option {
	return func(o *engineOptions) {
		o.tuning = t
	}
}

// WithLogger gives the Engine its own logger instead of the package logger
// set by SetLogger. Passing nil restores the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
