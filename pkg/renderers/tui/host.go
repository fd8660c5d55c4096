package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/renderers/headless"
)

// HostName identifies the terminal host in a render.Registry.
const HostName = "tui"

// Host runs a view as a prompt session: it prints the read-only view, asks
// whether to edit, and turns each edit frame into prompts.
type Host struct {
	driver    PromptDriver
	out       io.Writer
	theme     Theme
	maxRounds int
}

var _ render.Host = (*Host)(nil)

// New constructs a TUI host. Without WithPromptDriver it prompts through
// survey and requires stdin to be a terminal.
func New(options ...Option) (*Host, error) {
	h := &Host{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}

	if h.driver == nil {
		if !isTerminal(os.Stdin.Fd()) {
			return nil, ErrNoTerminal
		}
		h.driver = newSurveyDriver(os.Stdin, os.Stdout, h.out)
	}
	return h, nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Name reports the host identifier.
func (h *Host) Name() string {
	return HostName
}

// Run loops until the user declines to edit, the round limit is reached, or a
// prompt fails. Aborting with Ctrl+C returns ErrAborted.
func (h *Host) Run(ctx context.Context, view render.View) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.show(ctx, view); err != nil {
			return err
		}
		if view.Edit == nil || (h.maxRounds > 0 && round >= h.maxRounds) {
			return nil
		}

		again, err := h.driver.Confirm(ctx, ConfirmConfig{
			Message: h.theme.PromptPrefix + "Edit?",
			Default: true,
		})
		if err != nil {
			return fmt.Errorf("tui: confirm edit: %w", err)
		}
		if !again {
			return nil
		}

		ui := newPromptUI(ctx, h.driver, h.theme)
		view.Edit(ui)
		if err := ui.Err(); err != nil {
			if errors.Is(err, ErrAborted) {
				return err
			}
			_ = h.driver.Info(ctx, h.theme.ErrorPrefix+err.Error())
			return fmt.Errorf("tui: edit: %w", err)
		}
	}
}

func (h *Host) show(ctx context.Context, view render.View) error {
	rec := headless.New()
	rec.Frame(view.Present)

	text := rec.Text()
	if view.Title != "" {
		text = view.Title + "\n" + text
	}
	if err := h.driver.Info(ctx, h.theme.InfoPrefix+text); err != nil {
		return fmt.Errorf("tui: print view: %w", err)
	}
	return nil
}
