package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/tentacle-scylla/sqlcomplete/internal/config"
	"github.com/tentacle-scylla/sqlcomplete/internal/logging"
	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema/introspect"
)

// caret marks the cursor in text given on the command line.
const caret = "|"

type app struct {
	cfg      *config.Config
	log      *zap.Logger
	engine   *complete.Engine
	provider schema.Provider

	closeProvider func() error
}

// setup loads configuration, applies command line overrides and builds the
// engine.
func setup(c *cli.Context) (*app, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, err
	}
	g, err := cfg.Grammar()
	if err != nil {
		return nil, err
	}
	provider, closer, err := openProvider(cfg.Schema)
	if err != nil {
		return nil, err
	}
	log.Debug("schema source opened",
		zap.String(logging.FieldSource, describeSource(cfg.Schema)),
		zap.String(logging.FieldDialect, g.Dialect))

	return &app{
		cfg:           cfg,
		log:           log,
		engine:        complete.NewEngine(provider, g, cfg.Options()).WithLogger(log),
		provider:      provider,
		closeProvider: closer,
	}, nil
}

// Close releases the schema source and flushes the logger.
func (a *app) Close() {
	if a.closeProvider != nil {
		if err := a.closeProvider(); err != nil {
			a.log.Warn("closing schema source", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("schema") {
		cfg.Schema.File = c.String("schema")
	}
	if c.IsSet("sqlite") {
		cfg.Schema.SQLite = c.String("sqlite")
	}
	if c.IsSet("dialect") {
		cfg.Complete.Dialect = c.String("dialect")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
}

// openProvider builds the configured schema provider. It returns a nil
// provider when no source is configured.
func openProvider(sc config.SchemaConfig) (schema.Provider, func() error, error) {
	switch {
	case sc.File != "":
		s, err := schema.LoadFile(sc.File)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil

	case sc.SQLite != "":
		if _, err := os.Stat(sc.SQLite); err != nil {
			return nil, nil, errors.Wrap(err, "open sqlite schema")
		}
		db, err := sql.Open("sqlite", sc.SQLite)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open sqlite schema")
		}
		return schema.WithTimeout(introspect.NewSQLite(db), sc.Timeout), db.Close, nil
	}
	return nil, nil, nil
}

func describeSource(sc config.SchemaConfig) string {
	switch {
	case sc.File != "":
		return "file:" + sc.File
	case sc.SQLite != "":
		return "sqlite:" + sc.SQLite
	}
	return "none"
}

// splitCaret removes the first caret from input and places the cursor there.
// Without a caret the cursor is at the end.
func splitCaret(input string) complete.Request {
	input = strings.TrimRight(input, "\r\n")
	i := strings.Index(input, caret)
	if i < 0 {
		return complete.Request{Text: input, Cursor: len(input)}
	}
	return complete.Request{Text: input[:i] + input[i+len(caret):], Cursor: i}
}

func getInput(c *cli.Context) (string, error) {
	// Check for file flag
	if file := c.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "reading file")
		}
		return string(data), nil
	}

	// Check for positional argument
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	// Check for stdin
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}

	// Interactive mode - read until empty line or EOF
	fmt.Fprintln(os.Stderr, "Enter SQL, with | at the cursor (empty line or Ctrl+D to finish):")
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "reading input")
	}

	return strings.Join(lines, "\n"), nil
}
