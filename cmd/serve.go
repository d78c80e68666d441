package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quill/internal/pkg/secret"
	"quill/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the Quill API server with the specified configuration.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	// Server flags
	flags.StringP("host", "H", "127.0.0.1", "server host (env: HOST)")
	flags.IntP("port", "p", 8080, "server port (env: PORT)")
	flags.String("mode", "release", "server mode (debug/release/test)")

	// Gemini flags
	flags.String("model", "gemini-2.0-flash", "generation model id")
	flags.String("key-source", "env", "API key source (env/keyring)")

	// Log flags
	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.host", flags.Lookup("host"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))
	_ = viper.BindPFlag("server.mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("gemini.model", flags.Lookup("model"))
	_ = viper.BindPFlag("gemini.key_source", flags.Lookup("key-source"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// API key 缺失时直接退出
	src, err := secret.FromConfig(&cfg.Gemini)
	if err != nil {
		return err
	}
	apiKey, err := secret.Resolve(ctx, src)
	if err != nil {
		log.Error().Err(err).Str("source", src.Name()).Msg("gemini API key not available")
		return fmt.Errorf("%w (source: %s)", err, src.Name())
	}
	log.Info().Str("source", src.Name()).Msg("gemini API key loaded")

	// Create server
	srv, err := server.New(cfg, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	// Start server
	addr := cfg.Server.Addr()
	log.Info().
		Str("addr", addr).
		Str("mode", cfg.Server.Mode).
		Msg("starting server")

	return srv.Run(ctx, addr)
}
