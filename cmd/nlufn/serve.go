package nlufn

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nyambati/nlufn/internal/gateway"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the local http gateway",
	Long:  `Expose the handler over HTTP at /<stage>/invoke`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, p, err := newHandler()
		if err != nil {
			return err
		}
		defer p.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gw := gateway.NewAPIGateway(&cfg.Gateway, h, logger)
		if err := gw.Start(ctx); err != nil {
			logger.WithError(err).Error("gateway stopped with error")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
