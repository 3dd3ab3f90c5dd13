package scroll

import "math"

const (
	// EaseFactor is the fraction of the remaining gap closed on every tick.
	EaseFactor = 0.2

	// SnapThreshold ends the ease once a step would move less than this.
	SnapThreshold = 0.5
)

// State is a copy of the animator's offsets.
type State struct {
	Current float64
	Target  float64
	Max     float64
}

// Converged reports whether the displayed offset has reached the target.
func (s State) Converged() bool {
	return s.Current == s.Target
}

// Animator eases a displayed scroll offset toward a target offset.
//
// It is not safe for concurrent use; every method is called from the UI
// goroutine. The animator does not know whether the target came from the
// transport or from a manual control; the most recent setter wins.
type Animator struct {
	layout  Layout
	current float64
	target  float64
	max     float64
}

// NewAnimator creates an animator at the top of a layout.
func NewAnimator(layout Layout) *Animator {
	a := &Animator{}
	a.SetLayout(layout)
	return a
}

// SetLayout installs new content metrics and re-clamps both offsets so a
// stale target never exceeds the new bounds.
func (a *Animator) SetLayout(layout Layout) {
	a.layout = layout
	a.max = layout.MaxOffset()
	a.target = clampOffset(a.target, a.max)
	a.current = clampOffset(a.current, a.max)
}

// Layout returns the current content metrics.
func (a *Animator) Layout() Layout {
	return a.layout
}

// OffsetForLine returns the clamped offset that vertically centres line i.
func (a *Animator) OffsetForLine(i int) float64 {
	i = min(max(i, 0), a.layout.LastLine())
	lineHeight := float64(a.layout.LineHeight)
	target := a.layout.LineTop(i) - float64(a.layout.ViewportHeight)*0.5 + lineHeight*0.5
	return clampOffset(target, a.max)
}

// SetTargetForLine aims the viewport at the centre of line i.
func (a *Animator) SetTargetForLine(i int) {
	a.target = a.OffsetForLine(i)
}

// SetTargetNormalized aims the viewport at a fraction of the scrollable range.
func (a *Animator) SetTargetNormalized(fraction float64) {
	a.target = clampUnit(fraction) * a.max
}

// ResetToTop jumps to offset 0 without easing.
func (a *Animator) ResetToTop() {
	a.current = 0
	a.target = 0
}

// Tick advances the displayed offset one step and reports whether it moved.
func (a *Animator) Tick() bool {
	if a.current == a.target {
		return false
	}
	delta := (a.target - a.current) * EaseFactor
	if math.Abs(delta) < SnapThreshold {
		a.current = a.target
	} else {
		a.current += delta
	}
	return true
}

// Offset is the displayed scroll offset.
func (a *Animator) Offset() float64 {
	return a.current
}

// Target is the offset the animator is easing toward.
func (a *Animator) Target() float64 {
	return a.target
}

// MaxOffset is the largest reachable offset for the current layout.
func (a *Animator) MaxOffset() float64 {
	return a.max
}

// Converged reports whether the displayed offset equals the target.
func (a *Animator) Converged() bool {
	return a.current == a.target
}

// State copies the offsets.
func (a *Animator) State() State {
	return State{Current: a.current, Target: a.target, Max: a.max}
}

func clampOffset(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
