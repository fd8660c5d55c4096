package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-inspect/internal/config"
	"github.com/goliatone/go-inspect/pkg/generator"
	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/overlay"
	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/renderers/headless"
	"github.com/goliatone/go-inspect/pkg/renderers/tui"
	"github.com/goliatone/go-inspect/pkg/renderers/web"
	"github.com/goliatone/go-inspect/pkg/schemaexport"
)

func main() {
	configPath := flag.String("config", "", "settings file (YAML or JSON)")
	hostName := flag.String("host", "", "host to run: headless, tui or web")
	addr := flag.String("addr", "", "listen address for the web host")
	overlayPath := flag.String("overlay", "", "overlay file or directory")
	labels := flag.Bool("labels", false, "humanize field captions")
	schemaOut := flag.String("schema", "", "write the OpenAPI schema of the demo types to this file and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *hostName != "" {
		cfg.Host = *hostName
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *overlayPath != "" {
		cfg.Overlay = *overlayPath
	}
	if *labels {
		cfg.Labels = true
	}

	var opts []generator.Option
	if cfg.Overlay != "" {
		store, err := loadOverlay(cfg.Overlay)
		if err != nil {
			log.Fatalf("Failed to load overlay: %v", err)
		}
		opts = append(opts, generator.WithOverrides(store))
	}
	if cfg.Labels {
		opts = append(opts, generator.WithLabeler(model.DefaultLabeler))
	}
	gen := generator.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *schemaOut != "" {
		if err := writeSchema(ctx, gen, *schemaOut); err != nil {
			log.Fatalf("Failed to export schema: %v", err)
		}
		fmt.Printf("Schema written to %s\n", *schemaOut)
		return
	}

	inspector, err := generator.For[App](gen)
	if err != nil {
		log.Fatalf("Failed to generate editor: %v", err)
	}

	hosts, err := newHosts(cfg)
	if err != nil {
		log.Fatalf("Failed to configure hosts: %v", err)
	}
	host, err := hosts.Get(cfg.Host)
	if err != nil {
		log.Fatalf("Unknown host %q (available: %s)", cfg.Host, strings.Join(hosts.List(), ", "))
	}

	if host.Name() == web.HostName {
		log.Printf("Serving on http://%s", host.(*web.Host).Addr())
	}
	app := newApp()
	if err := host.Run(ctx, inspector.View("inspect demo", app)); err != nil {
		log.Fatalf("Host %s failed: %v", host.Name(), err)
	}
}

func newHosts(cfg config.Config) (*render.Registry, error) {
	registry := render.NewRegistry()
	registry.MustRegister(headless.NewHost(os.Stdout))

	webOpts := []web.Option{web.WithAddr(cfg.Addr)}
	if selection := cfg.ThemeSelection(); selection != nil {
		webOpts = append(webOpts, web.WithTheme(selection))
	}
	webHost, err := web.New(webOpts...)
	if err != nil {
		return nil, err
	}
	registry.MustRegister(webHost)

	// The prompt host needs a terminal; leave it out when there is none.
	if tuiHost, err := tui.New(tui.WithTheme(tui.Theme{PromptPrefix: "› "})); err == nil {
		registry.MustRegister(tuiHost)
	} else if cfg.Host == tui.HostName {
		return nil, err
	}
	return registry, nil
}

func loadOverlay(path string) (*overlay.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return overlay.LoadFS(os.DirFS(path))
	}
	return overlay.LoadFile(path)
}

func writeSchema(ctx context.Context, gen *generator.Generator, path string) error {
	exporter := schemaexport.New(gen)
	doc, err := exporter.Document(ctx, "inspect demo", "1.0.0", reflect.TypeFor[App]())
	if err != nil {
		return err
	}

	var out []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err = yaml.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
