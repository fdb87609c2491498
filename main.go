// Command minepad runs the server that bridges browser-based virtual
// gamepads to in-game players.
//
// It serves the web pad page and REST API on the interface port, the pad
// websocket on the socket port, and hands every joining player a pairing
// URL carrying a short code. Flags control the config file location,
// host/port overrides, debug logging, and an optional ngrok tunnel so the
// pairing page is reachable from a phone during development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/incognitojam/minepad/api"
	"github.com/incognitojam/minepad/game"
	"github.com/incognitojam/minepad/internal/log"
	"github.com/incognitojam/minepad/pad/config"
	"github.com/incognitojam/minepad/pad/controller"
	"github.com/incognitojam/minepad/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Minepad Server"
)

func main() {
	cmd := &cli.Command{
		Name:    "minepad",
		Usage:   "bridge browser gamepads to in-game players",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the JSON config file"},
			&cli.StringFlag{Name: "hostname", Usage: "hostname used in pairing URLs"},
			&cli.IntFlag{Name: "interface-port", Usage: "port for the web pad page and REST API"},
			&cli.IntFlag{Name: "socket-port", Usage: "port for the pad websocket"},
			&cli.StringFlag{Name: "static-dir", Usage: "directory holding the web pad page"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, or error"},
			&cli.BoolFlag{Name: "debug", Usage: "force debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "expose the pairing page through an ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// Load .env if present; only a real read failure is worth mentioning.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel, cmd.Bool("debug"))
	logger.Info("starting", "app", AppName, "version", Version)

	registry := controller.NewRegistry(logger)
	world := game.NewWorld(registry, logger)
	registry.RegisterListener(world)

	hub := websocket.NewHub(registry, logger)
	go hub.Run()

	apiServer := api.NewServer(registry, world, cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go world.Run(ctx, cfg.TickRate)

	socketMux := http.NewServeMux()
	socketMux.HandleFunc("/ws", hub.ServeWS)

	interfaceServer := &http.Server{
		Addr:         cfg.InterfaceAddr(),
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	socketServer := &http.Server{
		Addr:        cfg.SocketAddr(),
		Handler:     socketMux,
		IdleTimeout: 60 * time.Second,
	}

	// A failed bind on either server is fatal to the whole process.
	errCh := make(chan error, 2)
	go func() {
		logger.Info("interface server listening", "addr", cfg.InterfaceAddr(),
			"pairing", cfg.PairURL("<code>"))
		if err := interfaceServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("interface server failed: %w", err)
		}
	}()
	go func() {
		logger.Info("socket server listening", "addr", cfg.SocketAddr(), "path", "/ws")
		if err := socketServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("socket server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") || os.Getenv("NGROK_ENABLED") == "true" {
		go runNgrokTunnel(ctx, cmd, apiServer, logger)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := interfaceServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("interface server shutdown error", "error", err)
	}
	if err := socketServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("socket server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

// loadConfig resolves the configuration: an explicit --config path must
// exist, the default path is optional, and flags win over file and
// environment.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	var cfg config.Config
	var err error

	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		cfg, err = config.Load(config.DefaultPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg = config.FromEnv()
		} else if err != nil {
			return config.Config{}, err
		}
	}

	if v := cmd.String("hostname"); v != "" {
		cfg.Hostname = v
	}
	if v := cmd.Int("interface-port"); v != 0 {
		cfg.InterfacePort = int(v)
	}
	if v := cmd.Int("socket-port"); v != 0 {
		cfg.SocketPort = int(v)
	}
	if v := cmd.String("static-dir"); v != "" {
		cfg.StaticDir = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runNgrokTunnel exposes the interface server (pad page + API) through an
// ngrok tunnel so phones outside the LAN can reach the pairing page.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler, logger *slog.Logger) {
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", "error", err)
		return
	}
	defer tun.Close()

	logger.Info("ngrok tunnel established", "url", tun.URL())
	logger.Info("pairing page (ngrok)", "url", tun.URL()+"/?code=<code>")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("ngrok server error", "error", err)
	}
}
