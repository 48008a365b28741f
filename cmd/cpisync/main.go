// cpisync is a command-line front end for the reconciliation framework: it
// seeds a store, reconciles it with remote peers over TCP using the fullsync
// strategy and reports per-peer session statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/gensync"
	"github.com/yku12cn/cpisync/item"
	"github.com/yku12cn/cpisync/recon"
	"github.com/yku12cn/cpisync/recon/fullsync"
	"github.com/yku12cn/cpisync/sqlog"
)

// Config carries the command-line configuration.
type Config struct {
	Peers    []string      `mapstructure:"peer"`
	Items    []string      `mapstructure:"item"`
	DB       string        `mapstructure:"db"`
	LogLevel string        `mapstructure:"log-level"`
	Timeout  time.Duration `mapstructure:"timeout"`
	OneWay   bool          `mapstructure:"one-way"`
}

// DefaultConfig returns the default command-line configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cpisync",
		Short:         "set reconciliation between peers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg := DefaultConfig()
	cmd.PersistentFlags().StringArrayVar(&cfg.Peers, "peer", cfg.Peers,
		"peer address (host:port); can be passed multiple times, sync order follows flag order")
	cmd.PersistentFlags().StringArrayVar(&cfg.Items, "item", cfg.Items,
		"seed item; can be passed multiple times")
	cmd.PersistentFlags().StringVar(&cfg.DB, "db", cfg.DB,
		"path of the sqlite element log; empty for a memory-only store")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout,
		"overall session deadline; zero waits indefinitely")
	cmd.PersistentFlags().BoolVar(&cfg.OneWay, "one-way", cfg.OneWay,
		"skip the negotiation acknowledgment when initiating")
	cmd.AddCommand(syncCmd(&cfg), serveCmd(&cfg))
	return cmd
}

func syncCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "initiate reconciliation with every registered peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, (*gensync.GenSync).StartSync)
		},
	}
}

func serveCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "accept reconciliation from every registered peer in turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, (*gensync.GenSync).ListenSync)
		},
	}
}

func run(
	cmd *cobra.Command,
	cfg *Config,
	sync func(*gensync.GenSync, context.Context, int) error,
) error {
	if err := loadConfig(cmd, cfg); err != nil {
		return err
	}
	if len(cfg.Peers) == 0 {
		return fmt.Errorf("at least one --peer is required")
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := []gensync.Opt{
		gensync.WithLogger(logger),
		gensync.WithStrategies(fullsync.New(
			recon.WithLogger(logger),
			recon.WithOneWay(cfg.OneWay),
		)),
	}
	for _, addr := range cfg.Peers {
		opts = append(opts, gensync.WithPeers(comm.NewTCP(addr, comm.WithLogger(logger))))
	}
	if cfg.DB != "" {
		log, err := sqlog.Open(cfg.DB, sqlog.WithLogger(logger))
		if err != nil {
			return err
		}
		opts = append(opts, gensync.WithElementLog(log))
	}
	for _, s := range cfg.Items {
		opts = append(opts, gensync.WithElements(item.FromString(s)))
	}
	gs, err := gensync.New(opts...)
	if err != nil {
		return err
	}
	defer gs.Close()

	ctx := cmd.Context()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	syncErr := sync(gs, ctx, 0)
	for i := 0; i < gs.NumPeers(); i++ {
		sent, _ := gs.BytesSent(i)
		rcvd, _ := gs.BytesReceived(i)
		elapsed, _ := gs.SyncTime(i)
		logger.Info("peer summary",
			zap.Int("peer", i),
			zap.Uint64("bytes_sent", sent),
			zap.Uint64("bytes_received", rcvd),
			zap.Duration("sync_time", elapsed))
	}
	fmt.Println(gs.Describe())
	return syncErr
}

// loadConfig merges an optional viper config file and environment into
// flag-provided values.
func loadConfig(cmd *cobra.Command, cfg *Config) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	viper.SetEnvPrefix("cpisync")
	viper.AutomaticEnv()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(cfg, hook); err != nil {
		return fmt.Errorf("parse configuration: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
