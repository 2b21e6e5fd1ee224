package commons

import (
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
)

type EntityID uuid.UUID

func NewEntityID() EntityID {
	return EntityID(uuid.New())
}

// NewEntityIDFromReader draws a random ID from r, so a seeded source yields
// a reproducible sequence of IDs.
func NewEntityIDFromReader(r io.Reader) (EntityID, error) {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return EntityID{}, err
	}
	return EntityID(id), nil
}

func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// Short is the first group of the textual ID, enough to tell entities apart
// in logs.
func (id EntityID) Short() string {
	return id.String()[:8]
}

// Transform is the per-entity state advanced every tick.
type Transform struct {
	X, Y   float64
	VX, VY float64
}

// Step advances t by dt seconds, bouncing off the square [-bounds, bounds].
func (t *Transform) Step(dt, bounds float64) {
	t.X, t.VX = bounce(t.X+t.VX*dt, t.VX, bounds)
	t.Y, t.VY = bounce(t.Y+t.VY*dt, t.VY, bounds)
}

func bounce(pos, vel, bounds float64) (float64, float64) {
	switch {
	case pos < -bounds:
		return -bounds, -vel
	case pos > bounds:
		return bounds, -vel
	default:
		return pos, vel
	}
}

func (t Transform) Speed() float64 {
	return math.Hypot(t.VX, t.VY)
}

func (t Transform) InBounds(bounds float64) bool {
	return math.Abs(t.X) <= bounds && math.Abs(t.Y) <= bounds
}

func (t Transform) String() string {
	return fmt.Sprintf("(x=%.2f,y=%.2f,v=%.2f)", t.X, t.Y, t.Speed())
}
