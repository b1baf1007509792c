package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"homeplan/internal/server"
	"homeplan/pkg/constants"
)

// Version is set at build time.
var Version = "dev"

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation engine and plan store over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		address := serveAddress
		if address == "" {
			address = conf.Server.Address
		}
		if address == "" {
			address = constants.DefaultServerAddress
		}

		handler := server.NewHandler(logger, repo, conf.Sweep, Version)
		logger.Info("listening",
			zap.String("op", "cli.serve"),
			zap.String("address", address),
		)
		return http.ListenAndServe(address, handler)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override")
	rootCmd.AddCommand(serveCmd)
}
