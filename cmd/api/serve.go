package main

import (
	"errors"

	"evote/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the voting API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.BuildAPI(cmd.Context())
		if err != nil {
			return err
		}
		runErr := app.Run(cmd.Context())
		return errors.Join(runErr, app.Close())
	},
}
