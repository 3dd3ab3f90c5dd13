// Package params holds the host-automatable parameters. Values live in
// atomic cells so the host and UI goroutines can read them without locks.
package params

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/mmcdole/prompter/internal/domain"
)

// Spec describes one parameter's range and default.
type Spec struct {
	ID       domain.ParamID
	Name     string
	Min      float32
	Max      float32
	Interval float32 // 0 = continuous
	Default  float32
	Toggle   bool // stored as 0 or 1
}

var specs = []Spec{
	{ID: domain.ParamAutoScroll, Name: "Auto Scroll", Min: 0, Max: 1, Default: 1, Toggle: true},
	{ID: domain.ParamFontSize, Name: "Font Size", Min: 12, Max: 48, Interval: 0.1, Default: 24},
	{ID: domain.ParamManualScroll, Name: "Manual Scroll", Min: 0, Max: 1, Interval: 0.0001, Default: 0},
	{ID: domain.ParamStartBar, Name: "Start Bar", Min: 0, Max: 4096, Interval: 0.01, Default: 0},
	{ID: domain.ParamEndBar, Name: "End Bar", Min: 0, Max: 4096, Interval: 0.01, Default: 64},
	{ID: domain.ParamResetOnStop, Name: "Reset On Stop", Min: 0, Max: 1, Default: 0, Toggle: true},
}

// Specs returns every parameter spec in declaration order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the spec for id.
func Lookup(id domain.ParamID) (Spec, bool) {
	i := indexOf(id)
	if i < 0 {
		return Spec{}, false
	}
	return specs[i], true
}

func indexOf(id domain.ParamID) int {
	for i := range specs {
		if specs[i].ID == id {
			return i
		}
	}
	return -1
}

// Legalize clamps v into the spec's range and snaps it to the interval.
func (s Spec) Legalize(v float32) float32 {
	if s.Toggle {
		if v > 0.5 {
			return 1
		}
		return 0
	}
	x := float64(v)
	if math.IsNaN(x) {
		return s.Default
	}
	if s.Interval > 0 && !math.IsInf(x, 0) {
		step := float64(s.Interval)
		x = float64(s.Min) + math.Round((x-float64(s.Min))/step)*step
	}
	x = math.Max(float64(s.Min), math.Min(float64(s.Max), x))
	return float32(x)
}

// Store is the live parameter set.
type Store struct {
	values  []atomic.Uint32 // float32 bit patterns, indexed like specs
	version atomic.Uint64
}

// NewStore returns a store holding every default.
func NewStore() *Store {
	s := &Store{values: make([]atomic.Uint32, len(specs))}
	for i, spec := range specs {
		s.values[i].Store(math.Float32bits(spec.Default))
	}
	return s
}

// Get returns the current value of id.
func (s *Store) Get(id domain.ParamID) (float32, error) {
	i := indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("get %q: %w", id, domain.ErrUnknownParam)
	}
	return s.load(i), nil
}

// Set legalizes v, stores it, and returns the stored value.
func (s *Store) Set(id domain.ParamID, v float32) (float32, error) {
	i := indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("set %q: %w", id, domain.ErrUnknownParam)
	}
	legal := specs[i].Legalize(v)
	if old := s.values[i].Swap(math.Float32bits(legal)); old != math.Float32bits(legal) {
		s.version.Add(1)
	}
	return legal, nil
}

// SetBool stores a toggle parameter.
func (s *Store) SetBool(id domain.ParamID, on bool) error {
	v := float32(0)
	if on {
		v = 1
	}
	_, err := s.Set(id, v)
	return err
}

// Toggle flips a toggle parameter and returns the new state.
func (s *Store) Toggle(id domain.ParamID) (bool, error) {
	v, err := s.Get(id)
	if err != nil {
		return false, err
	}
	on := v <= 0.5
	return on, s.SetBool(id, on)
}

// Version increases whenever any stored value changes.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

func (s *Store) load(i int) float32 {
	return math.Float32frombits(s.values[i].Load())
}

func (s *Store) mustLoad(id domain.ParamID) float32 {
	return s.load(indexOf(id))
}

// AutoScroll reports whether the scroll target follows the transport.
func (s *Store) AutoScroll() bool { return s.mustLoad(domain.ParamAutoScroll) > 0.5 }

// ResetOnStop reports whether a transport stop jumps back to the top.
func (s *Store) ResetOnStop() bool { return s.mustLoad(domain.ParamResetOnStop) > 0.5 }

func (s *Store) FontSize() float32     { return s.mustLoad(domain.ParamFontSize) }
func (s *Store) ManualScroll() float32 { return s.mustLoad(domain.ParamManualScroll) }
func (s *Store) StartBar() float32     { return s.mustLoad(domain.ParamStartBar) }
func (s *Store) EndBar() float32       { return s.mustLoad(domain.ParamEndBar) }

// Range returns the configured bar range.
func (s *Store) Range() domain.RangeConfig {
	return domain.RangeConfig{StartBar: s.StartBar(), EndBar: s.EndBar()}
}

// Snapshot copies every value.
func (s *Store) Snapshot() domain.Params {
	return domain.Params{
		AutoScroll:   s.AutoScroll(),
		FontSize:     s.FontSize(),
		ManualScroll: s.ManualScroll(),
		StartBar:     s.StartBar(),
		EndBar:       s.EndBar(),
		ResetOnStop:  s.ResetOnStop(),
	}
}

// Restore replaces every value with p, legalizing each one.
func (s *Store) Restore(p domain.Params) {
	s.SetBool(domain.ParamAutoScroll, p.AutoScroll)
	s.Set(domain.ParamFontSize, p.FontSize)
	s.Set(domain.ParamManualScroll, p.ManualScroll)
	s.Set(domain.ParamStartBar, p.StartBar)
	s.Set(domain.ParamEndBar, p.EndBar)
	s.SetBool(domain.ParamResetOnStop, p.ResetOnStop)
}

// Defaults returns the default value of every parameter.
func Defaults() domain.Params {
	return NewStore().Snapshot()
}
