// Package theme holds the process-wide light/dark flag with durable
// persistence and the fixed color token mapping consumed by the presentation
// layer.
package theme

import (
	"context"
	"sync"

	"github.com/atelieperto/atelieperto/internal/client/store"
	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/atelieperto/atelieperto/internal/logging"
)

// Persisted preference literals. Anything else in the store is ignored.
const (
	prefDark  = "dark"
	prefLight = "light"
)

// Colors is the full token set the render tree consumes. The mapping from
// the dark flag to Colors is total: every token has a value in both modes.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Info      string

	Background      string
	Surface         string
	Card            string
	Text            string
	TextSecondary   string
	TextTertiary    string
	Border          string
	InputBackground string
	Placeholder     string

	// sewing theme accents
	Cream string
	Beige string
}

var lightColors = Colors{
	Primary:   "#FF6B35",
	Secondary: "#FFA726",
	Success:   "#4CAF50",
	Error:     "#F44336",
	Warning:   "#FF9800",
	Info:      "#2196F3",

	Background:      "#FFFFFF",
	Surface:         "#F8F9FA",
	Card:            "#FFFFFF",
	Text:            "#212121",
	TextSecondary:   "#757575",
	TextTertiary:    "#9E9E9E",
	Border:          "#E0E0E0",
	InputBackground: "#F5F5F5",
	Placeholder:     "#9E9E9E",

	Cream: "#F5F5DC",
	Beige: "#FFF8DC",
}

var darkColors = Colors{
	Primary:   "#FF6B35",
	Secondary: "#FFA726",
	Success:   "#4CAF50",
	Error:     "#F44336",
	Warning:   "#FF9800",
	Info:      "#2196F3",

	Background:      "#121212",
	Surface:         "#1E1E1E",
	Card:            "#2D2D2D",
	Text:            "#FFFFFF",
	TextSecondary:   "#B3B3B3",
	TextTertiary:    "#808080",
	Border:          "#404040",
	InputBackground: "#2D2D2D",
	Placeholder:     "#808080",

	Cream: "#2D2A26",
	Beige: "#2D2B26",
}

// State is the theme flag holder. Create one per client, Init once, then
// Toggle from the presentation layer. It never surfaces errors to the UI;
// persistence problems are logged and the in-memory flag stays authoritative.
type State struct {
	mu    sync.Mutex
	store store.Store
	log   logging.Logger
	dark  bool
}

func NewState(st store.Store, log logging.Logger) *State {
	return &State{store: st, log: log}
}

// Init reads the persisted preference. Absent, unrecognized, or unreadable
// values all fall back to light mode.
func (s *State) Init(ctx context.Context) {
	v, ok, err := s.store.Get(ctx, common.ThemeKey)
	if err != nil {
		s.log.Warn(ctx, "reading theme preference failed, using default", "err", err)
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch v {
	case prefDark:
		s.dark = true
	case prefLight:
		s.dark = false
	}
}

// Toggle flips the flag, persists the new value, and returns the new flag.
// The write is optimistic: a persistence failure is logged but the in-memory
// flag is not rolled back, so the UI always reflects the toggle.
func (s *State) Toggle(ctx context.Context) bool {
	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark
	s.mu.Unlock()

	v := prefLight
	if dark {
		v = prefDark
	}
	if err := s.store.Set(ctx, common.ThemeKey, v); err != nil {
		s.log.Warn(ctx, "persisting theme preference failed", "err", err)
	}
	return dark
}

// IsDark reports the current flag.
func (s *State) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Colors returns the token set for the current flag. Pure two-way branch.
func (s *State) Colors() Colors {
	if s.IsDark() {
		return darkColors
	}
	return lightColors
}
