package main

import (
	"github.com/graphia-app/graphia-sub005/document"
	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/spf13/cobra"
)

var (
	sessionPath string
	configPath  string

	doc         *document.Document
	loadedCfg   config.Defaults

	rootCmd = &cobra.Command{
		Use:   "graphia-core",
		Short: "Graph state engine: load, transform, select and persist a graph session",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			loadedCfg = cfg
			d, err := loadSession(sessionPath, cfg)
			if err != nil {
				return wrapOpenError(err)
			}
			doc = d
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "path to a session file (created by save/save-as if missing)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "graphia.yaml", "path to a document-defaults config file")

	rootCmd.AddCommand(openCmd, saveCmd, saveAsCmd)
	rootCmd.AddCommand(applyTransformCmd, removeTransformCmd, moveTransformCmd)
	rootCmd.AddCommand(selectCmd, clearSelectionCmd, findCmd, zoomCmd)
}
