package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbonduro/mealai/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			a.cfg.ListenAddr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := web.NewServer(a.service, a.cfg.FoodSearchEnabled, a.logger)
		if err := server.ListenAndServe(ctx, a.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address, overrides listen_addr")
	rootCmd.AddCommand(serveCmd)
}
