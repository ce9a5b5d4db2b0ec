package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "hcdrive",
	Short:   "Cloud-drive file sharing server built on raw sockets",
	Long: `hcdrive is a small cloud-drive file sharing server. It serves browsers
over HTTP/1.1 implemented from scratch on raw TCP streams, and exposes a
plain-text diagnostic port for operational inspection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("share-dir", "", "shared files directory (default: ./share, env: HCDRIVE_STORAGE_SHARE)")
	rootCmd.PersistentFlags().String("static-dir", "", "static assets directory (default: ./static, env: HCDRIVE_STORAGE_STATIC)")
	rootCmd.PersistentFlags().String("name", "", "server address shown to users (env: HCDRIVE_SERVER_NAME)")
	rootCmd.PersistentFlags().String("region", "", "server region shown to users (env: HCDRIVE_SERVER_REGION)")

	_ = viper.BindPFlag("storage.share", rootCmd.PersistentFlags().Lookup("share-dir"))
	_ = viper.BindPFlag("storage.static", rootCmd.PersistentFlags().Lookup("static-dir"))
	_ = viper.BindPFlag("server.name", rootCmd.PersistentFlags().Lookup("name"))
	_ = viper.BindPFlag("server.region", rootCmd.PersistentFlags().Lookup("region"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
