package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hcdrive/hcdrive"
	"github.com/hcdrive/hcdrive/filesystem"
	"github.com/hcdrive/hcdrive/server"
	"github.com/hcdrive/hcdrive/webui"
)

var serveCmd = &cobra.Command{
	Use:   "serve FRONTEND_PORT BACKEND_PORT",
	Short: "Start the file sharing server",
	Long: `Start the file sharing server. The first argument is the front-end
port browsers connect to; the second is the back-end diagnostic port you
can reach with netcat or telnet.`,
	Args: cobra.ExactArgs(2),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	frontendPort, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("frontend port %q is not a number", args[0])
	}
	backendPort, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("backend port %q is not a number", args[1])
	}
	viper.Set("server.frontend_port", frontendPort)
	viper.Set("server.backend_port", backendPort)

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.Storage.Share, 0o750); err != nil {
		return fmt.Errorf("create share directory: %w", err)
	}
	root, err := os.OpenRoot(cfg.Storage.Share)
	if err != nil {
		return fmt.Errorf("open share root: %w", err)
	}
	defer func() { _ = root.Close() }()

	stats := hcdrive.NewStats()
	registry := hcdrive.NewRegistry(filesystem.NewStore(root), stats)
	if err := registry.Populate(ctx); err != nil {
		return err
	}
	slog.Info("share directory scanned",
		"path", cfg.Storage.Share, "files", len(registry.List()))

	static, err := server.ScanStatic(cfg.Storage.Static)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Name:         cfg.Server.Name,
		Region:       cfg.Server.Region,
		FrontendPort: cfg.Server.FrontendPort,
		BackendPort:  cfg.Server.BackendPort,
		MaxConns:     cfg.Server.MaxConns,
	}, registry, stats, webui.New(cfg.Server.Name, cfg.Server.Region), static)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
