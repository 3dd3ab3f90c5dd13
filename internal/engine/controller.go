// Package engine runs the UI-side half of the prompter: it reads the
// transport bridge, picks the active line, drives the scroll animator, and
// applies the stop-reset policy.
package engine

import (
	"log/slog"

	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/params"
	"github.com/mmcdole/prompter/internal/scroll"
	"github.com/mmcdole/prompter/internal/transport"
)

// SyncResult reports what one Sync step observed and did.
type SyncResult struct {
	Transport  domain.TransportSnapshot
	ActiveLine int
	LineMoved  bool // active line changed during this step
	Reset      bool // stop-reset fired during this step
}

// Controller owns scroll state and the active line. All methods must be
// called from the UI goroutine; the only state shared with the audio
// goroutine is the transport bridge and the parameter store.
type Controller struct {
	bridge   *transport.Bridge
	params   *params.Store
	animator *scroll.Animator
	logger   *slog.Logger

	activeLine int
}

// NewController creates a controller for a layout.
func NewController(bridge *transport.Bridge, store *params.Store, layout scroll.Layout, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		bridge:   bridge,
		params:   store,
		animator: scroll.NewAnimator(layout),
		logger:   logger,
	}
}

// SetLayout installs new metrics after a text, font size, or viewport change.
func (c *Controller) SetLayout(layout scroll.Layout) {
	c.animator.SetLayout(layout)
	c.activeLine = min(max(c.activeLine, 0), layout.LastLine())
}

// Layout returns the current metrics.
func (c *Controller) Layout() scroll.Layout {
	return c.animator.Layout()
}

// Sync runs the transport-rate step in a fixed order: map the transport to a
// line, choose the scroll target for the current mode, then apply a pending
// stop-reset. The reset comes last so a stale line target set in the same
// step cannot undo it.
func (c *Controller) Sync() SyncResult {
	snap := c.bridge.Snapshot()
	auto := c.params.AutoScroll()
	before := c.activeLine

	if snap.Valid {
		c.activeLine = scroll.ActiveLineInRange(snap.BarPosition, c.params.Range(), c.animator.Layout().NumLines)
		if auto {
			c.animator.SetTargetForLine(c.activeLine)
		}
	}

	if !auto {
		c.animator.SetTargetNormalized(float64(c.params.ManualScroll()))
	}

	reset := false
	if c.bridge.ConsumeStopped() && c.params.ResetOnStop() {
		c.activeLine = 0
		c.animator.ResetToTop()
		reset = true
		c.logger.Debug("transport stopped, reset to top")
	}

	return SyncResult{
		Transport:  snap,
		ActiveLine: c.activeLine,
		LineMoved:  c.activeLine != before,
		Reset:      reset,
	}
}

// Advance runs the frame-rate ease step and reports whether the offset moved.
func (c *Controller) Advance() bool {
	return c.animator.Tick()
}

// Tick runs Sync followed by Advance, for callers driving a single clock.
func (c *Controller) Tick() SyncResult {
	res := c.Sync()
	c.Advance()
	return res
}

// ActiveLine is the highlighted line.
func (c *Controller) ActiveLine() int {
	return c.activeLine
}

// Offset is the displayed scroll offset in display units.
func (c *Controller) Offset() float64 {
	return c.animator.Offset()
}

// Scroll copies the animator's offsets.
func (c *Controller) Scroll() scroll.State {
	return c.animator.State()
}

// Transport is the latest transport snapshot.
func (c *Controller) Transport() domain.TransportSnapshot {
	return c.bridge.Snapshot()
}

// SetStartBarToCurrent stores the current bar position as the range start.
// It returns false and changes nothing while the transport is invalid.
func (c *Controller) SetStartBarToCurrent() bool {
	return c.setBarToCurrent(domain.ParamStartBar)
}

// SetEndBarToCurrent stores the current bar position as the range end.
// It returns false and changes nothing while the transport is invalid.
func (c *Controller) SetEndBarToCurrent() bool {
	return c.setBarToCurrent(domain.ParamEndBar)
}

func (c *Controller) setBarToCurrent(id domain.ParamID) bool {
	if !c.bridge.Valid() {
		c.logger.Debug("ignoring set bar, transport invalid", "param", id)
		return false
	}
	bar := float32(c.bridge.BarPosition())
	stored, err := c.params.Set(id, bar)
	if err != nil {
		c.logger.Error("set bar to current", "param", id, "error", err)
		return false
	}
	c.logger.Info("bar set from transport", "param", id, "bar", stored)
	return true
}

// JumpToLine switches to manual scrolling aimed at line i. The manual
// fraction is chosen so the line ends up centred where possible. Line i is
// highlighted until the next Sync with a valid transport remaps the active
// line.
func (c *Controller) JumpToLine(i int) {
	layout := c.animator.Layout()
	i = min(max(i, 0), layout.LastLine())

	fraction := 0.0
	if maxOffset := c.animator.MaxOffset(); maxOffset > 0 {
		fraction = c.animator.OffsetForLine(i) / maxOffset
	}

	c.params.SetBool(domain.ParamAutoScroll, false)
	c.params.Set(domain.ParamManualScroll, float32(fraction))
	c.activeLine = i
	c.animator.SetTargetNormalized(float64(c.params.ManualScroll()))
}

// NudgeManual moves the manual scroll fraction by delta and returns the
// stored value. Auto-scroll is left as it is.
func (c *Controller) NudgeManual(delta float32) float32 {
	v, _ := c.params.Set(domain.ParamManualScroll, c.params.ManualScroll()+delta)
	return v
}
