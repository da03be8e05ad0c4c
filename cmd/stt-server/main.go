// Command stt-server runs the local speech-to-text HTTP service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Rakk301/speech-to-text-app/internal/config"
	"github.com/Rakk301/speech-to-text-app/internal/logger"
	"github.com/Rakk301/speech-to-text-app/internal/provider"
	"github.com/Rakk301/speech-to-text-app/internal/server"
	"github.com/Rakk301/speech-to-text-app/internal/session"
	"github.com/Rakk301/speech-to-text-app/internal/transcription"
	"github.com/Rakk301/speech-to-text-app/internal/transcription/whisper"
)

var cli struct {
	ConfigPath string `arg:"" optional:"" default:"config/settings.yaml" help:"Path to the YAML configuration file."`
	Host       string `default:"localhost" help:"Host to bind the HTTP server to."`
	Port       int    `default:"3001" help:"Port to bind to (0 selects a free port)."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("stt-server"),
		kong.Description("Local speech-to-text transcription server."),
	)

	kctx.FatalIfErrorf(run())
}

func run() error {
	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, "stt-server")
	log.Info("Configuration loaded", map[string]interface{}{
		"config_path": cli.ConfigPath,
		"provider":    cfg.STT.Provider,
		"model":       cfg.Whisper.Model,
	})

	registry := transcription.NewRegistry()
	registry.Register(whisper.ProviderName, provider.Info{
		Available:   true,
		Description: "Local Whisper model via whisper.cpp",
	}, whisper.Factory(log))

	sess, err := session.New(cfg, registry, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.WithError(cerr).Warn("Session close failed")
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(server.Config{Host: cli.Host, Port: cli.Port}, log)
	server.NewHandlers(sess, log).RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Ready to accept requests", map[string]interface{}{
		"addr": srv.Addr(),
	})

	<-ctx.Done()
	return srv.Stop(context.Background())
}
