package tui

import "io"

// Theme captures optional formatting hints the host applies when printing
// messages. Keep minimal to avoid coupling prompt logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI host.
type Option func(*Host)

// WithPromptDriver overrides the prompt driver used by the host. Supplying a
// driver also lifts the terminal requirement.
func WithPromptDriver(driver PromptDriver) Option {
	return func(h *Host) {
		if driver != nil {
			h.driver = driver
		}
	}
}

// WithOutput redirects informational output of the default survey driver.
func WithOutput(w io.Writer) Option {
	return func(h *Host) {
		h.out = w
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(h *Host) {
		h.theme = theme
	}
}

// WithMaxRounds stops the session after n edit rounds. Zero means the user
// decides when to stop.
func WithMaxRounds(n int) Option {
	return func(h *Host) {
		if n >= 0 {
			h.maxRounds = n
		}
	}
}
