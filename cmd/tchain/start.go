package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tchain/go-tchain/api"
	"github.com/tchain/go-tchain/miner"
	"github.com/tchain/go-tchain/network"
	"github.com/tchain/go-tchain/node"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a t-chain daemon",
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Start a t-chain node process",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNode(cmd.Context())
	},
}

func init() {
	nodeCmd.Flags().String("topic", "t-chain-test-net", "gossip topic to join")
	nodeCmd.Flags().Duration("mine-interval", miner.DefaultInterval, "delay between mining cycles")
	nodeCmd.Flags().Duration("peer-ttl", network.DefaultConfig().PeerTTL, "discovered peer expiry")
	nodeCmd.Flags().String("metrics-address", ":2112", "address of the metrics/API server (empty to disable)")
	if err := viper.BindPFlags(nodeCmd.Flags()); err != nil {
		slog.Error("Failed to bind nodeCmd flags", "error", err)
	}

	startCmd.AddCommand(nodeCmd)
}

func runNode(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := node.DefaultConfig()
	cfg.Topic = viper.GetString("topic")
	cfg.MineInterval = viper.GetDuration("mine-interval")
	cfg.Transport.PeerTTL = viper.GetDuration("peer-ttl")

	log := slog.Default()
	metrics := api.NewMetrics(prometheus.DefaultRegisterer, "tchain")

	transport, err := network.New(ctx, cfg.Transport, log)
	if err != nil {
		return err
	}
	defer transport.Close()

	n := node.New(cfg, transport, metrics, log)

	if addr := viper.GetString("metrics-address"); addr != "" {
		srv := api.NewServer(addr, prometheus.DefaultGatherer, n.Ledger(), log)
		srv.StartAsync()
		defer srv.Stop()
	}

	return n.Run(ctx)
}
