package interp

import "testing"

type fakeTarget struct {
	isStage bool
	visible bool
	state   State
	box     AABB

	applied bool
	x, y, dir, sx, sy, ghost float64
}

func (f *fakeTarget) IsStage() bool   { return f.isStage }
func (f *fakeTarget) Visible() bool   { return f.visible }
func (f *fakeTarget) Snapshot() State { return f.state }
func (f *fakeTarget) AABB() AABB      { return f.box }
func (f *fakeTarget) SetState(s State) { f.state = s }
func (f *fakeTarget) ApplyDrawable(x, y, direction, scaleX, scaleY, ghost float64) {
	f.applied = true
	f.x, f.y, f.dir, f.sx, f.sy, f.ghost = x, y, direction, scaleX, scaleY, ghost
}

func TestSetupSkipsStageAndInvisible(t *testing.T) {
	p := New()
	stage := &fakeTarget{isStage: true, visible: true, state: State{X: 1}}
	hidden := &fakeTarget{visible: false, state: State{X: 2}}
	sprite := &fakeTarget{visible: true, state: State{X: 3}}

	p.Setup(map[string]Target{"stage": stage, "hidden": hidden, "sprite": sprite})

	if _, ok := p.snapshots["stage"]; ok {
		t.Fatal("stage must never be snapshotted")
	}
	if _, ok := p.snapshots["hidden"]; ok {
		t.Fatal("invisible target must not be snapshotted")
	}
	if _, ok := p.snapshots["sprite"]; !ok {
		t.Fatal("visible non-stage target must be snapshotted")
	}
}

func TestInterpolatePositionMidpointWithinTolerance(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{X: 0, Y: 0}, box: AABB{Width: 10, Height: 10}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state = State{X: 10, Y: 0} // delta 10, well within min(50,20)=20
	p.Interpolate("s", sprite)

	if sprite.x != 5 {
		t.Fatalf("x = %v, want midpoint 5", sprite.x)
	}
}

func TestInterpolatePositionSnapsBeyondTolerance(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{X: 0, Y: 0}, box: AABB{Width: 1, Height: 1}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state = State{X: 1000, Y: 0} // far beyond tolerance
	p.Interpolate("s", sprite)

	if sprite.x != 1000 {
		t.Fatalf("x = %v, want snap to 1000", sprite.x)
	}
}

func TestInterpolateGhostAvoidsZeroToHundredLerp(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{Ghost: 0}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state.Ghost = 100
	p.Interpolate("s", sprite)

	if sprite.ghost != 100 {
		t.Fatalf("ghost = %v, want snap to 100 (delta of 100 is outside (0,25))", sprite.ghost)
	}
}

func TestInterpolateScaleSkippedOnSignFlip(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{ScaleX: 50, ScaleY: 50}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state = State{ScaleX: -50, ScaleY: 50} // X flipped sign
	p.Interpolate("s", sprite)

	if sprite.sx != -50 {
		t.Fatalf("scaleX = %v, want snap to -50 (no interpolation across a sign flip)", sprite.sx)
	}
}

func TestInterpolateDirectionAveragesAcrossZero(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{Direction: 359}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state.Direction = 1
	p.Interpolate("s", sprite)

	if diff := sprite.dir; diff < -0.01 || diff > 0.01 {
		t.Fatalf("direction = %v, want ~0 (359 and 1 average through 0, not 180)", diff)
	}
}

func TestInterpolateDirectionSkippedOnCostumeChange(t *testing.T) {
	p := New()
	sprite := &fakeTarget{visible: true, state: State{Direction: 0, Costume: 0}}
	p.Setup(map[string]Target{"s": sprite})

	sprite.state = State{Direction: 180, Costume: 1}
	p.Interpolate("s", sprite)

	if sprite.dir != 180 {
		t.Fatalf("direction = %v, want snap to 180 on costume change", sprite.dir)
	}
}
