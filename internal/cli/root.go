package cli

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "diskusage",
	Short: "Disk usage tool server",
	Long:  `diskusage exposes a get_disk_usage tool over MCP (stdio or streamable HTTP) and a plain JSON HTTP API.`,
	RunE:  runServe,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diskusage.yaml)")

	// DISKUSAGE_TRANSPORT, DISKUSAGE_ADDR
	viper.SetEnvPrefix("DISKUSAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".diskusage")
	}

	// stdout may carry MCP frames, so report on the log (stderr)
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}
