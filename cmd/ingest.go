package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zenonrecon/chainrecon/ingest"
	"github.com/zenonrecon/chainrecon/internal/obs"
	"github.com/zenonrecon/chainrecon/storage"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse a data directory and stream per-block records to a Redis sink",
	Run: func(cmd *cobra.Command, args []string) {
		if err := obs.Init(logrus.Level(viper.GetUint64("log-level")), viper.GetString("log-file")); err != nil {
			fmt.Fprintln(os.Stderr, "couldn't configure logging:", err)
			os.Exit(1)
		}
		startMetricsServer()

		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		sink := storage.NewRedisSink(redisAddr)
		defer sink.Close()

		dataDir, _ := cmd.Flags().GetString("data-dir")
		maxHeight, _ := cmd.Flags().GetInt64("max-height")
		tipMargin, _ := cmd.Flags().GetInt("tip-margin")

		result, err := ingest.Run(ingest.Options{
			DataDir:   dataDir,
			MaxHeight: maxHeight,
			TipMargin: tipMargin,
			Sink:      sink,
		})
		if err != nil {
			obs.Log.WithError(err).Fatal("pipeline failed")
		}

		obs.Log.WithFields(logrus.Fields{
			"tip_height": result.RetainedTip,
			"blocks":     result.BlocksParsed,
			"addresses":  len(result.Balances),
		}).Info("ingest complete")
	},
}

func init() {
	ingestCmd.Flags().String("data-dir", "", "directory containing blocks/blkNNNNN.dat")
	ingestCmd.Flags().Int64("max-height", -1, "maximum block height to include; -1 means no cap")
	ingestCmd.Flags().Int("tip-margin", ingest.DefaultTipMargin, "extra blocks to read past max-height before trusting a tip")
	ingestCmd.Flags().String("redis-addr", "127.0.0.1:6379", "address of the Redis sink")
	ingestCmd.MarkFlagRequired("data-dir")
}
