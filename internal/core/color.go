package core

// Color is a palette slot for a screen cell. The platform layer maps slots
// to concrete terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorDog
	ColorDogFace
	ColorSpike
	ColorBlock
	ColorPad
	ColorGrass
	ColorDirt
	ColorPit
	ColorCaution
	ColorFinish
	ColorStar
	ColorHUD
	ColorDim
	ColorTitle
	ColorAlert
	ColorGold
)
