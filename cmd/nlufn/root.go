package nlufn

import (
	"context"
	"fmt"

	"github.com/nyambati/nlufn/internal/config"
	"github.com/nyambati/nlufn/internal/handler"
	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/nyambati/nlufn/internal/provider"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config
var logger *logrus.Logger
var configDir string

var rootCmd = &cobra.Command{
	Use:   "nlufn",
	Short: "Serverless function that enriches events with NLU greeting intents",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper(), configDir)
		if err != nil {
			return fmt.Errorf("failed to load nlufn config: %w", err)
		}

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.WithError(err).Fatal("error occured while running nlufn")
	}
}

func init() {
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing .nlufn.yaml")
	rootCmd.PersistentFlags().String("model-path", "", "model store directory")
	rootCmd.PersistentFlags().String("backend", "", "interpreter backend (local or remote)")
	_ = viper.BindPFlag("model.path", rootCmd.PersistentFlags().Lookup("model-path"))
	_ = viper.BindPFlag("model.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

// newHandler wires the interpreter provider and handler for the configured backend.
func newHandler() (*handler.Handler, *provider.Provider, error) {
	entry := logrus.NewEntry(logger)
	load, err := interpreter.NewLoader(&cfg.Model, entry)
	if err != nil {
		return nil, nil, err
	}
	p := provider.NewProvider(cfg.Model.Path, load, entry)
	return handler.NewHandler(p, entry), p, nil
}
