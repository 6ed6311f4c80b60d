package main

import (
	"evote/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the voting tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.Migrate(cmd.Context())
	},
}
