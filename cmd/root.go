package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chainrecon",
	Short: "chainrecon reconstructs a canonical chain and UTXO balance snapshot from raw block files",
	Long: `chainrecon parses the raw blkNNNNN.dat files written by a
Bitcoin-derived full node, reconstructs the linear main chain by
reverse-walking block backlinks, and emits a per-address UTXO balance
snapshot — either to a text file or to a Redis sink.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(ingestCmd)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is current directory, chainrecon.yaml)")
	rootCmd.PersistentFlags().Int("log-level", int(logrus.InfoLevel), "log level (logrus 1-7)")
	rootCmd.PersistentFlags().String("log-file", "", "log file to write to (JSON lines); empty means stderr text logs")
	rootCmd.PersistentFlags().String("metrics-bind-addr", "", "address to serve Prometheus metrics on; empty disables it")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetDefault("log-level", int(logrus.InfoLevel))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("metrics-bind-addr", rootCmd.PersistentFlags().Lookup("metrics-bind-addr"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("chainrecon")
	}

	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()
	viper.ReadInConfig()
}
