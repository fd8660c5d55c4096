package headless

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-inspect/pkg/render"
)

// HostName identifies the headless host in a render.Registry.
const HostName = "headless"

// Host prints the read-only view of a value once and returns. Script, when
// set, runs an edit frame first so callers can apply scripted input.
type Host struct {
	Out    io.Writer
	Dump   bool
	Script func(r *Recorder)
}

var _ render.Host = (*Host)(nil)

// NewHost returns a host writing to w, or stdout when w is nil.
func NewHost(w io.Writer) *Host {
	return &Host{Out: w}
}

// Name implements render.Host.
func (h *Host) Name() string {
	return HostName
}

// Run implements render.Host.
func (h *Host) Run(ctx context.Context, view render.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := h.Out
	if out == nil {
		out = os.Stdout
	}

	rec := New()
	if h.Script != nil && view.Edit != nil {
		rec.Frame(view.Edit)
		h.Script(rec)
		rec.Frame(view.Edit)
	}
	rec.Frame(view.Present)

	if view.Title != "" {
		if _, err := fmt.Fprintf(out, "# %s\n", view.Title); err != nil {
			return fmt.Errorf("headless: write: %w", err)
		}
	}
	body := rec.Text()
	if h.Dump {
		body = rec.Dump()
	}
	if _, err := fmt.Fprintln(out, body); err != nil {
		return fmt.Errorf("headless: write: %w", err)
	}
	return nil
}
