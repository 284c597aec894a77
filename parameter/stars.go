package parameter

// Star field layout
const (
	// StarsPerWidth sizes the field from viewport width: count = width * StarsPerWidth
	StarsPerWidth = 0.15

	StarMinSize = 2.0
	StarMaxSize = 6.0
)

// Star drift
const (
	// StarDrift is the max displacement from home, positive pushes away from the whale
	StarDrift = 18.0
	// StarInfluence is the whale distance at which drift fades to zero
	StarInfluence = 260.0
	// StarMaxStep bounds movement per frame so stars never jump
	StarMaxStep = 2.5

	StarSpringFrequency = 4.0
	StarSpringDamping   = 0.6
)

// Star twinkle
const (
	StarTwinkleMinHz = 0.15
	StarTwinkleMaxHz = 0.9

	// StarGlintThreshold is the twinkle level above which the bright colour is screened on
	StarGlintThreshold = 0.85

	StarColorDim    = "#5a6b8c"
	StarColorBright = "#ffffff"
)
