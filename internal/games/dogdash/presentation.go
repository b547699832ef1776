package dogdash

import "github.com/vovakirdan/dogdash/internal/core"

const (
	spinRate  = 0.003 // Rotation per unit of vertical velocity while airborne
	spinDecay = 0.8   // Rotation multiplier per grounded tick
	shapeEase = 0.15  // Fraction of squash/stretch recovered per tick
)

// Presentation is the cosmetic pose of the dog. It is derived from tick
// events and never feeds back into physics.
type Presentation struct {
	Rotation float64 `json:"rotation"`
	Squash   float64 `json:"squash"`
	Stretch  float64 `json:"stretch"`
}

// NewPresentation returns the neutral pose.
func NewPresentation() Presentation {
	return Presentation{Squash: 1, Stretch: 1}
}

// Update applies one tick's events and eases the pose back toward neutral.
func (p *Presentation) Update(a Actor, events []core.Event) {
	for _, e := range events {
		switch e {
		case core.EventJump:
			p.Squash, p.Stretch = 0.7, 1.3
		case core.EventLand:
			p.Squash, p.Stretch = 1.2, 0.8
		case core.EventBlock:
			p.Squash, p.Stretch = 1.15, 0.85
		case core.EventPadBoost:
			p.Squash, p.Stretch = 0.6, 1.4
		}
	}

	if a.Grounded {
		p.Rotation *= spinDecay
	} else {
		p.Rotation += a.VY * spinRate
	}

	p.Squash += (1 - p.Squash) * shapeEase
	p.Stretch += (1 - p.Stretch) * shapeEase
}
