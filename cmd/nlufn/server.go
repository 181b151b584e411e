package nlufn

import (
	"github.com/nyambati/nlufn/internal/runtime"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "manage the remote nlu server container",
}

var serverUpCmd = &cobra.Command{
	Use:   "up",
	Short: "start the nlu server container",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtime.NewRuntime(logrus.NewEntry(logger))
		if err != nil {
			return err
		}

		id, err := rt.StartServer(cmd.Context(), &runtime.ServerConfig{
			Name:         cfg.Server.Name,
			Image:        cfg.Server.Image,
			Architecture: cfg.Server.Architecture,
			ModelPath:    cfg.Model.Path,
			Cmd:          cfg.Server.Cmd,
			Environment:  cfg.Server.Environment,
			Port:         cfg.Server.Port,
		})
		if err != nil {
			return err
		}

		logger.WithField("container_id", id).Infof("nlu server listening on port %s", cfg.Server.Port)
		return nil
	},
}

var serverDownCmd = &cobra.Command{
	Use:   "down",
	Short: "remove the nlu server container",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtime.NewRuntime(logrus.NewEntry(logger))
		if err != nil {
			return err
		}
		return rt.CleanContainerEnvironment(cmd.Context(), cfg.Server.Name)
	},
}

func init() {
	serverCmd.AddCommand(serverUpCmd, serverDownCmd)
	rootCmd.AddCommand(serverCmd)
}
