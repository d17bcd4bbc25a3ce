package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zenonrecon/chainrecon/ingest"
	"github.com/zenonrecon/chainrecon/internal/obs"
	"github.com/zenonrecon/chainrecon/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Parse a data directory and write a UTXO balance snapshot file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := obs.Init(logrus.Level(viper.GetUint64("log-level")), viper.GetString("log-file")); err != nil {
			fmt.Fprintln(os.Stderr, "couldn't configure logging:", err)
			os.Exit(1)
		}
		startMetricsServer()

		dataDir, _ := cmd.Flags().GetString("data-dir")
		maxHeight, _ := cmd.Flags().GetInt64("max-height")
		out, _ := cmd.Flags().GetString("out")
		tipMargin, _ := cmd.Flags().GetInt("tip-margin")

		result, err := ingest.Run(ingest.Options{
			DataDir:   dataDir,
			MaxHeight: maxHeight,
			TipMargin: tipMargin,
		})
		if err != nil {
			obs.Log.WithError(err).Fatal("pipeline failed")
		}

		if out == "" {
			out = fmt.Sprintf("snapshot-%d.txt", result.RetainedTip)
		}
		f, err := os.Create(out)
		if err != nil {
			obs.Log.WithError(err).WithField("path", out).Fatal("couldn't create snapshot file")
		}
		defer f.Close()

		if err := snapshot.WriteText(f, result.Balances); err != nil {
			obs.Log.WithError(err).Fatal("couldn't write snapshot")
		}

		obs.Log.WithFields(logrus.Fields{
			"tip_height": result.RetainedTip,
			"blocks":     result.BlocksParsed,
			"addresses":  len(result.Balances),
			"out":        out,
		}).Info("snapshot written")
	},
}

func startMetricsServer() {
	addr := viper.GetString("metrics-bind-addr")
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	go http.ListenAndServe(addr, mux)
}

func init() {
	snapshotCmd.Flags().String("data-dir", "", "directory containing blocks/blkNNNNN.dat")
	snapshotCmd.Flags().Int64("max-height", -1, "maximum block height to include; -1 means no cap")
	snapshotCmd.Flags().String("out", "", "output snapshot file path; default snapshot-<height>.txt")
	snapshotCmd.Flags().Int("tip-margin", ingest.DefaultTipMargin, "extra blocks to read past max-height before trusting a tip")
	snapshotCmd.MarkFlagRequired("data-dir")
}
