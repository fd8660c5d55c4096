package render

import "context"

// View is what a host draws every refresh cycle: a read-only presentation
// and an editor over the same value. Both are invoked from the host's single
// rendering goroutine.
type View struct {
	Title   string
	Present func(ui UI)
	Edit    func(ui UI)
}

// Host drives a View with a concrete widget toolkit until the session ends or
// ctx is cancelled.
type Host interface {
	Name() string
	Run(ctx context.Context, view View) error
}
