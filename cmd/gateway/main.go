package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	gateway "github.com/ncecere/prompt-gateway"
	"github.com/ncecere/prompt-gateway/config"
	"github.com/ncecere/prompt-gateway/middleware"
	"github.com/ncecere/prompt-gateway/openai"
	"github.com/ncecere/prompt-gateway/provider"
	"github.com/ncecere/prompt-gateway/registry"
	"github.com/ncecere/prompt-gateway/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.WithError(err).Fatal("config.load")
	}
	setupLogging(cfg.Debug)

	if cfg.EnvFile != "" {
		log.WithField("file", cfg.EnvFile).Debug("config.env_file")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; upstream calls will fail")
	}

	opts := provider.ClientOptions{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
	}
	if cfg.OpenAIOrganization != "" {
		opts.Headers = http.Header{"OpenAI-Organization": []string{cfg.OpenAIOrganization}}
	}
	if cfg.UpstreamTimeout > 0 {
		opts.HTTPClient = openai.WithHTTPTimeout(cfg.UpstreamTimeout)
	}
	client, err := openai.NewClient(opts)
	if err != nil {
		log.WithError(err).Fatal("openai.client")
	}

	presets := registry.Default()
	model := middleware.WrapLanguageModel(
		client.ChatModel(gateway.ChatPreset().Model),
		middleware.LoggingLanguageModel(middleware.LoggingOptions{
			LogRequest:  cfg.Debug,
			LogResponse: true,
			LogErrors:   true,
		}),
	)

	app := server.New(gateway.NewModelCompleter(model), presets, server.Options{Debug: cfg.Debug})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":  cfg.Addr(),
			"modes": presets.Modes(),
			"debug": cfg.Debug,
		}).Info("server.start")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("server.listen")
		}
	case <-ctx.Done():
		log.Info("server.shutdown")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("server.shutdown")
		}
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetHandler(text.New(os.Stderr))
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetHandler(jsonhandler.New(os.Stderr))
	log.SetLevel(log.InfoLevel)
}
