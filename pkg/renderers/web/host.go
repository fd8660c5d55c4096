package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-inspect/pkg/render"
	rendertemplate "github.com/goliatone/go-inspect/pkg/render/template"
	"github.com/goliatone/go-inspect/pkg/render/template/pongo"
	"github.com/goliatone/go-inspect/pkg/renderers/headless"
)

// HostName identifies the web host in a render.Registry.
const HostName = "web"

const shutdownTimeout = 5 * time.Second

// Host serves a view as an HTML page. GET renders the read-only view above an
// edit form; POST applies the submitted form as one edit frame and redirects
// back. Frames are serialized, so the view is only ever drawn by one request
// at a time.
type Host struct {
	addr       string
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	policy     *bluemonday.Policy
	theme      *theme.RendererConfig

	mu sync.Mutex
}

var _ render.Host = (*Host)(nil)

// New constructs a web host.
func New(options ...Option) (*Host, error) {
	cfg := config{
		addr:       DefaultAddr,
		templateFS: TemplatesFS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templates
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("web: configure template renderer: %w", err)
		}
		templates = engine
	}

	selection := cfg.selection
	if cfg.selector != nil {
		selected, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("web: select theme %q: %w", cfg.themeName, err)
		}
		selection = selected
	}
	themeCfg, err := themeConfig(selection)
	if err != nil {
		return nil, err
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	policy := cfg.policy
	if policy == nil {
		policy = bluemonday.StrictPolicy()
	}

	return &Host{
		addr:       cfg.addr,
		templates:  templates,
		stylesheet: stylesheet,
		policy:     policy,
		theme:      themeCfg,
	}, nil
}

// Name reports the host identifier.
func (h *Host) Name() string {
	return HostName
}

// Addr reports the listen address used by Run.
func (h *Host) Addr() string {
	return h.addr
}

// Handler returns a router serving view.
func (h *Host) Handler(view render.View) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r, view)
	return r
}

// RegisterRoutes mounts the page, the form endpoint and a plain-text
// rendering of the view on r.
func (h *Host) RegisterRoutes(r chi.Router, view render.View) {
	r.Get("/", h.handlePage(view))
	r.Post("/", h.handleSubmit(view))
	r.Get("/text", h.handleText(view))
}

// Run serves view on the configured address until ctx is cancelled.
func (h *Host) Run(ctx context.Context, view render.View) error {
	if ctx == nil {
		return errors.New("web: context is required")
	}

	srv := &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(view),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web: shutdown: %w", err)
		}
		return nil
	}
}

func (h *Host) handlePage(view render.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.Render(view, r.URL.Path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (h *Host) handleSubmit(view render.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "web: parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		h.Submit(view, r.PostForm)
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
	}
}

func (h *Host) handleText(view render.View) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.mu.Lock()
		rec := headless.New()
		rec.Frame(view.Present)
		text := rec.Text()
		h.mu.Unlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text + "\n"))
	}
}

// Submit applies form values as one edit frame of view.
func (h *Host) Submit(view render.View, form map[string][]string) {
	if view.Edit == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if form == nil {
		form = map[string][]string{}
	}
	view.Edit(newFormUI(h.policy, form))
}

// Render draws view into a full HTML page whose form posts to action.
func (h *Host) Render(view render.View, action string) ([]byte, error) {
	h.mu.Lock()
	present := newFormUI(h.policy, nil)
	if view.Present != nil {
		view.Present(present)
	}
	var edit string
	if view.Edit != nil {
		ui := newFormUI(h.policy, nil)
		view.Edit(ui)
		edit = ui.HTML()
	}
	h.mu.Unlock()

	if action == "" {
		action = "/"
	}
	data := map[string]any{
		"title":      view.Title,
		"present":    present.HTML(),
		"edit":       edit,
		"action":     action,
		"stylesheet": h.stylesheet,
		"css_vars":   cssVarList(h.theme),
	}
	if h.theme != nil {
		data["theme"] = h.theme.Theme
		data["variant"] = h.theme.Variant
	}

	out, err := h.templates.RenderTemplate(PageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("web: render page: %w", err)
	}
	return []byte(out), nil
}
