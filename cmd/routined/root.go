package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"routined/internal/actor"
	"routined/internal/common/fsutil"
	"routined/internal/config"
	"routined/internal/httpapi"
	"routined/internal/job"
	"routined/internal/llm"
	"routined/internal/registry"
)

var version = "dev"

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// buildRootCmd constructs the routined command tree.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routined",
		Short:         "Host models behind an actor and run registered routines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		addr     string
		cfgPath  string
		logLevel string
		model    string
	)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the daemon and ops API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{Addr: addr, LogLevel: logLevel, ModelPath: model}
			if cfgPath != "" {
				p, err := fsutil.ResolveFile(cfgPath)
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				loaded, err := config.Load(p)
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				// Flags win over file values when set explicitly.
				if !cmd.Flags().Changed("addr") && loaded.Addr != "" {
					cfg.Addr = loaded.Addr
				}
				if !cmd.Flags().Changed("log-level") && loaded.LogLevel != "" {
					cfg.LogLevel = loaded.LogLevel
				}
				if !cmd.Flags().Changed("model") && loaded.ModelPath != "" {
					cfg.ModelPath = loaded.ModelPath
				}
				cfg.Capacity = loaded.Capacity
			}
			return runServe(cfg)
		},
	}
	serve.Flags().StringVar(&addr, "addr", envOr("ROUTINED_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	serve.Flags().StringVar(&cfgPath, "config", envOr("ROUTINED_CONFIG", ""), "Path to a yaml/json/toml config file")
	serve.Flags().StringVar(&logLevel, "log-level", envOr("ROUTINED_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	serve.Flags().StringVar(&model, "model", envOr("ROUTINED_MODEL", ""), "Path to a *.gguf model to host (enables llm.generate)")
	root.AddCommand(serve)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the routined version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("routined", version)
		},
	})

	return root
}

func runServe(cfg config.Config) error {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	httpapi.SetLogger(logger)

	reg := registry.New()
	tracker := job.NewTracker()

	if cfg.ModelPath != "" {
		path, err := fsutil.ResolveFile(cfg.ModelPath)
		if err != nil {
			return fmt.Errorf("model: %w", err)
		}
		m, err := llm.Open(path, llm.Options{})
		if err != nil {
			return fmt.Errorf("model: %w", err)
		}
		host := actor.Spawn(m)
		defer func() {
			if m, err := host.IntoModel(); err == nil {
				_ = m.Close()
			}
		}()
		if err := reg.Register(llm.GenerateRoutine()); err != nil {
			return err
		}
		logger.Info().Str("model", path).Msg("hosting model")
	}

	mux := httpapi.NewMux(reg, tracker)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("routined listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-stop:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown")
	}
	return nil
}
