// Command chq runs SQL against ClickHouse and prints the result rows as
// JSON lines.
//
//	chq query --env-file .env 'SELECT name FROM users LIMIT 10'
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoobzio/chql/client"
)

type queryOptions struct {
	envFile string
	one     bool
	debug   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "chq",
		Short:         "Query ClickHouse over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newQueryCmd(stdout, stderr))
	return root
}

func newQueryCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := queryOptions{}
	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run a query and print rows as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, opts.debug)
			err := runQuery(cmd.Context(), stdout, logger, opts, args[0])
			if err != nil {
				logger.Error().Err(err).Str("kind", errorKind(err)).Msg("query failed")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file with CLICKHOUSE_* variables")
	cmd.Flags().BoolVar(&opts.one, "one", false, "print only the first row")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	return cmd
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

func runQuery(ctx context.Context, out io.Writer, logger zerolog.Logger, opts queryOptions, sql string) error {
	var cfgOpts []client.ConfigOption
	if opts.envFile != "" {
		cfgOpts = append(cfgOpts, client.WithEnvFile(opts.envFile))
	}
	cfg, err := client.LoadConfig(cfgOpts...)
	if err != nil {
		return err
	}

	c, err := client.New(cfg, client.WithLogger(logger))
	if err != nil {
		return err
	}

	var rows []json.RawMessage
	if opts.one {
		row, ok, err := client.FetchOne[json.RawMessage](ctx, c, sql)
		if err != nil {
			return err
		}
		if ok {
			rows = append(rows, row)
		}
	} else {
		rows, err = client.FetchMany[json.RawMessage](ctx, c, sql)
		if err != nil {
			return err
		}
	}

	logger.Debug().Int("rows", len(rows)).Msg("query finished")
	for _, row := range rows {
		var line bytes.Buffer
		if err := json.Compact(&line, row); err != nil {
			return fmt.Errorf("failed to compact row: %w", err)
		}
		line.WriteByte('\n')
		if _, err := out.Write(line.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, client.ErrConfig):
		return "config"
	case errors.Is(err, client.ErrTransport):
		return "transport"
	case errors.Is(err, client.ErrDatabase):
		return "database"
	case errors.Is(err, client.ErrDeserialize):
		return "deserialize"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
