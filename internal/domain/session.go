package domain

// ParamID names a host-automatable parameter.
type ParamID string

const (
	ParamAutoScroll   ParamID = "AutoScroll"
	ParamFontSize     ParamID = "FontSize"
	ParamManualScroll ParamID = "ManualScroll"
	ParamStartBar     ParamID = "StartBar"
	ParamEndBar       ParamID = "EndBar"
	ParamResetOnStop  ParamID = "ResetOnStop"
)

// Params is a plain copy of every parameter value.
type Params struct {
	AutoScroll   bool    `json:"auto_scroll"`
	FontSize     float32 `json:"font_size"`
	ManualScroll float32 `json:"manual_scroll"`
	StartBar     float32 `json:"start_bar"`
	EndBar       float32 `json:"end_bar"`
	ResetOnStop  bool    `json:"reset_on_stop"`
}

// Range returns the bar range portion of the parameters.
func (p Params) Range() RangeConfig {
	return RangeConfig{StartBar: p.StartBar, EndBar: p.EndBar}
}

// SessionState is everything that survives a save/load cycle.
type SessionState struct {
	Params Params `json:"params"`
	Text   string `json:"text"`
}

// SessionStore persists session state by name.
type SessionStore interface {
	// Load returns ErrSessionNotFound when nothing was saved under name.
	Load(name string) (SessionState, error)
	Save(name string, state SessionState) error
	Delete(name string) error
	List() ([]string, error)
	Close() error
}
