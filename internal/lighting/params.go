package lighting

// Params are the fixed numeric constants of the lighting model.
type Params struct {
	// Ratio divides the internal light scale down to 0-255 brightness.
	Ratio int32

	// RevealThreshold is the accumulated light at or above which a lit,
	// unshadowed tile is recorded in the RevealMap.
	RevealThreshold int32

	// RevealedBrightness is the brightness floor of a revealed tile.
	RevealedBrightness int32

	// ShadowedPenalty lowers the floor for revealed tiles painted as shadow.
	ShadowedPenalty int32
}

// DefaultParams returns the stock lighting constants.
func DefaultParams() Params {
	return Params{
		Ratio:              100,
		RevealThreshold:    1000,
		RevealedBrightness: 30,
		ShadowedPenalty:    15,
	}
}

// MaxBrightness is the brightest LightMap value.
const MaxBrightness = 255
