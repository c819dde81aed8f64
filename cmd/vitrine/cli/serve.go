package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitrinecms/vitrine/internal/server"
	"github.com/vitrinecms/vitrine/internal/service"
	"github.com/vitrinecms/vitrine/internal/stats"
	"github.com/vitrinecms/vitrine/internal/upload"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Vitrine HTTP server",
		Long: `Start the HTTP server that exposes the public portfolio API and the
token-guarded admin API.

The token secret is mandatory: set auth.token_secret in the config file
or the VITRINE_AUTH_TOKEN_SECRET environment variable. The server
refuses to start without it rather than fall back to a guessable
default.`,
		RunE: runServe,
	}

	cmd.Flags().Bool("dev", false, "development mode: debug logging and plain-text log output")
	cmd.Flags().String("host", "0.0.0.0", "host to bind to")
	cmd.Flags().Int("port", 8080, "port to listen on")
	cmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")
	cmd.Flags().Bool("secure-cookies", true, "mark the session cookie Secure (disable for local HTTP development)")
	cmd.Flags().Int("contact-rpm", 5, "contact-form submissions allowed per minute per IP")

	viper.BindPFlag("server.dev", cmd.Flags().Lookup("dev"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.cors_origins", cmd.Flags().Lookup("cors-origins"))
	viper.BindPFlag("server.secure_cookies", cmd.Flags().Lookup("secure-cookies"))
	viper.BindPFlag("server.contact_rpm", cmd.Flags().Lookup("contact-rpm"))

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	var handler slog.Handler
	if viper.GetBool("server.dev") {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Refuse to start without a signing secret. A default secret would make
	// every deployment's tokens forgeable.
	codec, err := service.NewTokenCodec(viper.GetString("auth.token_secret"))
	if err != nil {
		return fmt.Errorf("auth.token_secret is required (set VITRINE_AUTH_TOKEN_SECRET): %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ttl := viper.GetDuration("auth.token_ttl")
	if ttl <= 0 {
		ttl = service.DefaultTokenTTL
	}
	authSvc := service.NewAuthService(st, codec, ttl)

	uploader, err := upload.New(uploadsDir())
	if err != nil {
		return fmt.Errorf("failed to prepare uploads directory: %w", err)
	}

	flushInterval := viper.GetDuration("stats.flush_interval")
	if flushInterval <= 0 {
		flushInterval = 30 * time.Second
	}
	tracker := stats.New(st, logger, flushInterval)
	tracker.Start()

	cfg := server.DefaultConfig()
	cfg.Host = viper.GetString("server.host")
	cfg.Port = viper.GetInt("server.port")
	cfg.CORSOrigins = viper.GetStringSlice("server.cors_origins")
	cfg.SecureCookies = viper.GetBool("server.secure_cookies")
	cfg.ContactRPM = viper.GetInt("server.contact_rpm")

	srv := server.New(cfg, st, authSvc, tracker, uploader, logger)

	fmt.Printf("Vitrine server\n")
	fmt.Printf("  → listening on http://%s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("  → store driver %s\n", st.Driver())
	fmt.Printf("  → session TTL %s\n", ttl)

	return srv.ListenAndServe()
}
