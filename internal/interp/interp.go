// Package interp implements the Kinetic Interpolator: a small peripheral
// component a renderer invokes each frame to linearly interpolate
// visual state between simulation ticks.
package interp

import "math"

// State is a per-target visual snapshot.
type State struct {
	X, Y      float64
	Direction float64
	ScaleX    float64
	ScaleY    float64
	Costume   int
	Ghost     float64
}

// AABB is the axis-aligned bounding box of a drawable in stage
// coordinates, used to size the position-interpolation tolerance.
type AABB struct {
	Width  float64
	Height float64
}

// Target is the renderer-side handle the interpolator reads from and
// writes interpolated visual state to. It never mutates simulation
// state: the interpolator never touches logic-owned fields directly.
type Target interface {
	IsStage() bool
	Visible() bool
	Snapshot() State
	AABB() AABB
	SetState(s State)
	ApplyDrawable(x, y, direction, scaleX, scaleY, ghost float64)
}

// Interpolator holds one snapshot per target id between simulation
// ticks.
type Interpolator struct {
	snapshots map[string]State
}

// New returns an empty Interpolator.
func New() *Interpolator {
	return &Interpolator{snapshots: make(map[string]State)}
}

// Setup snapshots every visible non-stage target; any other target's
// prior snapshot (if present) is cleared.
func (p *Interpolator) Setup(targets map[string]Target) {
	for id, t := range targets {
		if !t.IsStage() && t.Visible() {
			p.snapshots[id] = t.Snapshot()
		} else {
			delete(p.snapshots, id)
		}
	}
}

// Restore snaps every target with a recorded snapshot back to its own
// state, so mid-frame interpolation never leaks into the next
// simulation tick's logic.
func (p *Interpolator) Restore(targets map[string]Target) {
	for id := range p.snapshots {
		if t, ok := targets[id]; ok {
			s := t.Snapshot()
			t.ApplyDrawable(s.X, s.Y, s.Direction, s.ScaleX, s.ScaleY, s.Ghost)
		}
	}
}

// Interpolate is called at sub-tick rate by the renderer. It blends the
// target's recorded pre-tick snapshot with its current post-tick state
// and pushes the result to the drawable, without touching t's logic
// state.
func (p *Interpolator) Interpolate(id string, t Target) {
	prev, ok := p.snapshots[id]
	if !ok {
		return
	}
	curr := t.Snapshot()
	aabb := t.AABB()

	x, y := lerpPosition(prev, curr, aabb)
	ghost := lerpGhost(prev.Ghost, curr.Ghost)

	direction := curr.Direction
	scaleX, scaleY := curr.ScaleX, curr.ScaleY
	if curr.Costume == prev.Costume {
		direction = lerpDirection(prev.Direction, curr.Direction)
		if sameSign(prev.ScaleX, curr.ScaleX) && sameSign(prev.ScaleY, curr.ScaleY) {
			scaleX, scaleY = lerpScale(prev, curr)
		}
	}

	t.ApplyDrawable(x, y, direction, scaleX, scaleY, ghost)
}

func lerpPosition(prev, curr State, aabb AABB) (x, y float64) {
	dx := curr.X - prev.X
	dy := curr.Y - prev.Y
	if math.Abs(dx) <= 0.1 && math.Abs(dy) <= 0.1 {
		return curr.X, curr.Y
	}
	tolX := math.Min(50, 10+aabb.Width)
	tolY := math.Min(50, 10+aabb.Height)
	if math.Abs(dx) <= tolX && math.Abs(dy) <= tolY {
		return (prev.X + curr.X) / 2, (prev.Y + curr.Y) / 2
	}
	return curr.X, curr.Y
}

func lerpGhost(prev, curr float64) float64 {
	d := math.Abs(curr - prev)
	if d > 0 && d < 25 {
		return (prev + curr) / 2
	}
	return curr
}

// lerpDirection averages two compass-style angles (0 = up, clockwise)
// by summing their unit vectors and taking atan2 of the sum, so 359 and
// 1 average to 0 rather than 180.
func lerpDirection(prevDeg, currDeg float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	sumSin := math.Sin(toRad(prevDeg)) + math.Sin(toRad(currDeg))
	sumCos := math.Cos(toRad(prevDeg)) + math.Cos(toRad(currDeg))
	if sumSin == 0 && sumCos == 0 {
		return currDeg
	}
	return math.Atan2(sumSin, sumCos) * 180 / math.Pi
}

func lerpScale(prev, curr State) (x, y float64) {
	if math.Abs(curr.ScaleX-prev.ScaleX) < 100 {
		return (prev.ScaleX + curr.ScaleX) / 2, (prev.ScaleY + curr.ScaleY) / 2
	}
	return curr.ScaleX, curr.ScaleY
}

func sameSign(a, b float64) bool {
	if a == 0 || b == 0 {
		return true
	}
	return math.Signbit(a) == math.Signbit(b)
}
