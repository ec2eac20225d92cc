package commands

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alp4ka/keyset/internal/config"
	"github.com/Alp4ka/keyset/internal/store"
)

type dbOpener func(cfg *config.Database, logger gormlogger.Interface) (*gorm.DB, error)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(store.Open)
}

func newRootCmd(open dbOpener) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "keyset",
		Short:        "Page through users, posts, images and tags with keyset cursors",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./keyset.yaml)")

	rootCmd.AddCommand(
		newListCommand(&configPath, open),
		NewVersionCommand(),
	)

	return rootCmd
}
