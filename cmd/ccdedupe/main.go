// ccdedupe removes duplicate lines from raw CommonCrawl text on stdin and can
// carry the set of seen lines between runs.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/homier/probing"
	"github.com/homier/probing/dedupe"
	"github.com/spf13/cobra"
)

// Placeholder for any of the three file arguments.
const devNull = "/dev/null"

type config struct {
	initialSize int
	compression string
	mmap        bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "ccdedupe file_to_remove src_hash_table out_hash_table",
		Short: "Deduplicate CommonCrawl lines from stdin to stdout",
		Long: `Strips leading and trailing spaces, drops document delimiter lines,
duplicate lines and lines with invalid UTF-8.

  file_to_remove   each line in this file won't be added to the output
  src_hash_table   hash table of a previous run of this program saved to disk
  out_hash_table   file name for writing the hash table to disk

Pass "/dev/null" for any argument you do not want to provide.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args[0], args[1], args[2])
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().IntVar(&cfg.initialSize, "initial-size", probing.DefaultInitialSize, "Expected number of lines when no source table is given")
	cmd.Flags().StringVar(&cfg.compression, "compression", probing.CompressionNone.String(), "Stream compression of the table files: none, zstd or lz4")
	cmd.Flags().BoolVar(&cfg.mmap, "mmap", false, "Keep the table in anonymous memory mappings")
	cmd.Flags().StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	return cmd
}

func run(cmd *cobra.Command, cfg config, removePath, srcPath, outPath string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	compression, err := probing.ParseCompression(cfg.compression)
	if err != nil {
		return err
	}

	logger := probing.NewTextLogger(level)
	opts := []probing.Option[uint64]{probing.WithLogger[uint64](logger)}
	if cfg.mmap {
		opts = append(opts, probing.WithAllocator[uint64](probing.MmapAllocator{}))
	}

	var lines *dedupe.LineSet
	if srcPath != devNull {
		lines, err = dedupe.Load(srcPath, compression, opts...)
	} else {
		lines, err = dedupe.New(cfg.initialSize, opts...)
	}
	if err != nil {
		return err
	}
	defer lines.Close()

	remove, err := os.Open(removePath)
	if err != nil {
		return err
	}
	defer remove.Close()

	seeded, err := lines.Seed(remove)
	if err != nil {
		return fmt.Errorf("read %s: %w", removePath, err)
	}

	stats, err := lines.Filter(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	logger.Info("filtered input",
		"removed_lines", seeded,
		"read", stats.Read,
		"written", stats.Written,
		"distinct", lines.Size(),
	)

	if outPath == devNull {
		return nil
	}

	return lines.Save(outPath, compression)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
