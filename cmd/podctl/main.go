// Command podctl is a development CLI for exercising the compression
// pipeline directly: enqueue a message, force a flush, and print batch
// stats. It talks to a process-local Batcher rather than a long-running
// daemon, adapted from the mock-command style of cmd/synnergy/main.go.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yousif123412321/pod-protocol/core"
	pkgconfig "github.com/yousif123412321/pod-protocol/pkg/config"
)

// failSwitch lets `enqueue --simulate-fail` flip a hook from failing to
// succeeding between a first enqueue and a subsequent RetryBatch call,
// both within the same process.
type failSwitch struct{ fail bool }

// loadPipelineConfig loads the closed configuration envelope from
// configFile, falling back to in-process defaults when configFile is
// empty. There is no package-level singleton: the loaded Config flows
// straight into newBatcher's caller rather than a global AppConfig.
func loadPipelineConfig(configFile string, maxBatchSize int, batchingEnabled bool) (*pkgconfig.Config, error) {
	if configFile == "" {
		return &pkgconfig.Config{
			MaxBatchSize:    maxBatchSize,
			FlushIntervalMS: 5000,
			BatchingEnabled: batchingEnabled,
			Storage:         pkgconfig.StorageConfig{Kind: "in_memory"},
		}, nil
	}
	return pkgconfig.Load(configFile, "")
}

func newBatcher(cfg *pkgconfig.Config, fs *failSwitch) (*core.Batcher, error) {
	logger := logrus.New()
	store, err := core.NewObjectStore(core.StorageConfig{
		Kind:       core.StorageKind(cfg.Storage.Kind),
		GatewayURL: cfg.Storage.GatewayURL,
		Disabled:   cfg.Storage.Disabled,
	}, "", logger)
	if err != nil {
		return nil, fmt.Errorf("build object store: %w", err)
	}
	hook := func(ctx context.Context, commitment core.BatchCommitment) (core.Signature, error) {
		if fs != nil && fs.fail {
			return core.Signature{}, fmt.Errorf("simulated commit failure for batch %d", commitment.BatchID)
		}
		fmt.Printf("committed batch %d root=%s records=%d\n", commitment.BatchID, commitment.Root.Hex(), len(commitment.Leaves))
		return core.Signature{}, nil
	}
	return core.NewBatcher(core.Config{
		MaxBatchSize:    cfg.MaxBatchSize,
		FlushInterval:   time.Duration(cfg.FlushIntervalMS) * time.Millisecond,
		DisableBatching: !cfg.BatchingEnabled,
		Storage:         store,
		Hasher:          core.NewHasher(),
		Merkle:          core.NewMerkleEngine(),
		CommitHook:      hook,
		Logger:          logger,
	})
}

func enqueueCmd() *cobra.Command {
	var channelHex, senderHex, content, kind, configFile string
	var simulateFail bool
	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "enqueue a record and flush it immediately",
		Run: func(cmd *cobra.Command, args []string) {
			channel, err := core.IdFromHex(channelHex)
			if err != nil {
				fmt.Fprintln(os.Stderr, "invalid --channel:", err)
				os.Exit(1)
			}
			sender, err := core.IdFromHex(senderHex)
			if err != nil {
				fmt.Fprintln(os.Stderr, "invalid --sender:", err)
				os.Exit(1)
			}
			cfg, err := loadPipelineConfig(configFile, 1, false)
			if err != nil {
				fmt.Fprintln(os.Stderr, "load config:", err)
				os.Exit(1)
			}
			// enqueue always seals its single record, whatever a config
			// file says about batching.
			cfg.BatchingEnabled = false
			fs := &failSwitch{fail: simulateFail}
			b, err := newBatcher(cfg, fs)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			handle, err := b.Enqueue(context.Background(), core.RecordInput{
				Channel: channel,
				Sender:  sender,
				Content: []byte(content),
				Kind:    core.RecordKind(kind),
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "enqueue failed:", err)
				if simulateFail {
					fmt.Println("retrying with the commit hook now succeeding...")
					fs.fail = false
					if sig, rerr := b.RetryBatch(context.Background(), handle.BatchID); rerr != nil {
						fmt.Fprintln(os.Stderr, "retry failed:", rerr)
						os.Exit(1)
					} else {
						fmt.Printf("retry succeeded, signature=%x\n", sig[:8])
					}
				}
				return
			}
			fmt.Printf("enqueued into batch %d at leaf %d content_hash=%s\n", handle.BatchID, handle.LeafIndex, handle.ContentHash.Hex())
		},
	}
	cmd.Flags().StringVar(&channelHex, "channel", "", "hex-encoded 32-byte channel id")
	cmd.Flags().StringVar(&senderHex, "sender", "", "hex-encoded 32-byte sender id")
	cmd.Flags().StringVar(&content, "content", "", "message content")
	cmd.Flags().StringVar(&kind, "kind", string(core.RecordText), "record kind")
	cmd.Flags().BoolVar(&simulateFail, "simulate-fail", false, "simulate a commit hook failure")
	cmd.Flags().StringVar(&configFile, "config", "", "path to a pipeline config file (YAML/JSON/TOML); defaults to an in-memory baseline")
	return cmd
}

func statsCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "show an empty-session baseline stats snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadPipelineConfig(configFile, 100, true)
			if err != nil {
				fmt.Fprintln(os.Stderr, "load config:", err)
				os.Exit(1)
			}
			b, err := newBatcher(cfg, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s := b.Stats()
			fmt.Printf("queue_len=%d total_batches=%d total_records=%d last_commit_at=%d\n", s.QueueLen, s.TotalBatches, s.TotalRecords, s.LastCommitAt)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "path to a pipeline config file (YAML/JSON/TOML); defaults to an in-memory baseline")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{Use: "podctl"}
	rootCmd.AddCommand(enqueueCmd())
	rootCmd.AddCommand(statsCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
