package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"landmark-viewer/internal/assets"
	"landmark-viewer/internal/catalog"
	"landmark-viewer/internal/config"
	"landmark-viewer/internal/env"
	"landmark-viewer/internal/fonts"
	"landmark-viewer/internal/graphics"
	"landmark-viewer/internal/logger"
	"landmark-viewer/internal/ui"
	"landmark-viewer/internal/viewer"
)

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "config file (JSON)")
	sceneName := pflag.StringP("scene", "s", "", "scene to open first (overrides scene.default)")
	catalogPath := pflag.String("catalog", "", "scene catalog (YAML); empty uses the built-in one")
	cssPath := pflag.String("css", "ui.css", "stylesheet layered over the built-in one")
	pflag.Parse()

	if _, err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		config.Set("catalog.path", *catalogPath)
	}

	lg, err := logger.New(logger.Options{Level: config.GetString("log.level"), Console: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lg.Close()
	log := lg.Component("main")

	cat, err := catalog.Load(config.GetString("catalog.path"))
	if err != nil {
		log.Fatal().Err(err).Msg("catalog")
	}

	engine, err := ui.New()
	if err != nil {
		log.Fatal().Err(err).Msg("ui")
	}
	if _, err := os.Stat(*cssPath); err == nil {
		if err := engine.LoadCSS(*cssPath); err != nil {
			log.Warn().Err(err).Msg("stylesheet ignored")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := viewer.NewApp(ctx, viewer.Options{
		Catalog:     cat,
		CatalogPath: config.GetString("catalog.path"),
		Watch:       config.GetBool("catalog.watch"),
		ConfigPath:  *configPath,
		History:     lg,
		Deps: viewer.Deps{
			Engine:  engine,
			Cursor:  &ui.Cursor{},
			Loader:  assets.NewLoader(config.GetString("assets.cacheDir"), lg.Component("assets")),
			Timing:  config.GetPopupTiming(),
			Scaling: config.GetScaling(),
			Log:     lg.Component("viewer"),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("viewer")
	}

	first := *sceneName
	if first == "" {
		first = config.GetString("scene.default")
	}

	setup := func() {
		if name := config.GetString("ui.font"); name != "" {
			if path, err := fonts.Find(name); err != nil {
				log.Warn().Err(err).Str("font", name).Msg("font not found, using the default")
			} else if err := engine.LoadFont(path); err != nil {
				log.Warn().Err(err).Msg("font not loaded")
			}
		}
		if err := app.Start(first); err != nil {
			log.Error().Err(err).Str("scene", first).Msg("falling back to the catalog default")
			if err := app.Start(""); err != nil {
				log.Fatal().Err(err).Msg("no scene could be opened")
			}
		}
	}
	closeAll := func() {
		app.Close()
		engine.Unload()
	}

	log.Info().Int("scenes", len(cat.Scenes)).Str("config", *configPath).Msg("starting")
	graphics.Run(ctx, config.GetWindow(), graphics.Hooks{
		Init:   setup,
		Update: app.Update,
		Draw:   app.Draw,
		Close:  closeAll,
	})
	log.Info().Msg("bye")
}
