// Command chnative decodes a ClickHouse Native-format file from the
// command line, for inspecting a file's schema and row count outside of
// the embedding database that normally drives the bind/scan contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chnative "github.com/quackscience/duckdb-extension-clickhouse-native"
	"github.com/quackscience/duckdb-extension-clickhouse-native/nativefunc"
	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
)

const scanChunkSize = 4096

type openFlags struct {
	compressed   bool
	lenientTypes bool
}

func (f *openFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.compressed, "compressed", false, "treat the file as carrying per-block compression frames")
	cmd.Flags().BoolVar(&f.lenientTypes, "lenient-types", false, "decode unrecognized column types as String instead of failing")
}

func (f *openFlags) options() []nativefunc.Option {
	return []nativefunc.Option{
		nativefunc.WithCompressedBlocks(f.compressed),
		nativefunc.WithFallbackToString(f.lenientTypes),
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chnative",
		Short: "Inspect ClickHouse Native-format files",
	}

	root.AddCommand(newSchemaCmd())
	root.AddCommand(newCountCmd())

	return root
}

func newSchemaCmd() *cobra.Command {
	var flags openFlags

	cmd := &cobra.Command{
		Use:   "schema <path>",
		Short: "Print the column schema discovered from the file's first block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := chnative.Open(args[0], flags.options()...)
			if err != nil {
				return err
			}
			defer data.Close() //nolint:errcheck

			for _, col := range data.Schema {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\thost=%d\tnullable=%v\n", col.Name, col.Host, col.Nullable)
			}

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newCountCmd() *cobra.Command {
	var flags openFlags

	cmd := &cobra.Command{
		Use:   "count <path>",
		Short: "Decode every block and print the total row count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := chnative.Open(args[0], flags.options()...)
			if err != nil {
				return err
			}
			defer data.Close() //nolint:errcheck

			state, err := chnative.NewScan(data)
			if err != nil {
				return err
			}
			defer state.Close() //nolint:errcheck

			total := 0
			for {
				chunk := projection.NewSliceChunk(scanChunkSize, data.Schema)

				n, err := state.Scan(chunk)
				if err != nil {
					return err
				}
				if n == 0 {
					break
				}

				total += n
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rows across %d columns\n", total, len(data.Schema))

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
