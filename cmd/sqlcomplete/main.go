package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tentacle-scylla/sqlcomplete/internal/server"
	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/hover"
	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
)

// errNoSchema is returned by commands that need a schema source.
var errNoSchema = errors.WithHint(errors.New("no schema configured"), "use --schema or --sqlite")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		pterm.Error.Println(err)
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sqlcomplete",
		Usage:   "Context-aware SQL completion",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: ./sqlcomplete.yaml if present)",
			},
			&cli.StringFlag{
				Name:  "schema",
				Usage: "Schema file (.yaml, .yml or .json)",
			},
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "SQLite database to read the schema from",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Keyword grammar dialect",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			completeCmd(),
			hoverCmd(),
			tokensCmd(),
			tablesCmd(),
			serveCmd(),
		},
	}
}

func completeCmd() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Aliases:   []string{"c"},
		Usage:     "Propose completions at a cursor",
		ArgsUsage: "<sql with | at the cursor>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read SQL from file",
			},
			&cli.IntFlag{
				Name:  "cursor",
				Usage: "Byte offset of the cursor; the text is taken verbatim",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the full analysis as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			input, err := getInput(c)
			if err != nil {
				return err
			}
			req := splitCaret(input)
			if c.IsSet("cursor") {
				req = complete.Request{Text: input, Cursor: c.Int("cursor")}
			}

			res, err := a.engine.Analyze(c.Context, req)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return printJSON(res)
			}
			if len(res.Proposals) == 0 {
				pterm.Info.Println("no proposals")
				return nil
			}
			data := pterm.TableData{{"#", "Proposal", "Kind", "Detail"}}
			for _, p := range res.Proposals {
				data = append(data, []string{strconv.Itoa(p.Rank), p.ReplacementText, string(p.Kind), p.Detail})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func hoverCmd() *cli.Command {
	return &cli.Command{
		Name:      "hover",
		Usage:     "Describe the word at a cursor",
		ArgsUsage: "<sql with | at the cursor>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read SQL from file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			input, err := getInput(c)
			if err != nil {
				return err
			}
			req := splitCaret(input)

			info, err := hover.NewResolver(a.provider).Hover(c.Context, hover.Request{Text: req.Text, Position: req.Cursor})
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(info)
			}
			if info == nil {
				pterm.Info.Println("nothing to describe")
				return nil
			}
			pterm.Println(info.Content)
			return nil
		},
	}
}

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:    "tokens",
		Aliases: []string{"t"},
		Usage:   "Show how the input is tokenized",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read SQL from file",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include whitespace and comments",
			},
		},
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Stmt", "Span", "Type", "Text"}}
			for i, seg := range tokenize.Statements(tokenize.Tokenize(input)) {
				for _, tok := range seg.Tokens {
					if tok.IsTrivia() && !c.Bool("all") {
						continue
					}
					data = append(data, []string{
						strconv.Itoa(i + 1),
						fmt.Sprintf("%d-%d", tok.Start, tok.End),
						string(tok.Type),
						strconv.Quote(tok.Text),
					})
				}
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func tablesCmd() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List the tables and columns the provider exposes",
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.provider == nil {
				return errNoSchema
			}

			tables, err := a.provider.ListTables(c.Context)
			if err != nil {
				return err
			}
			for _, t := range tables {
				pterm.Printf("%s\n", pterm.LightCyan(t.Name))
				cols, err := a.provider.ListColumns(c.Context, t.Name)
				if err != nil {
					pterm.Warning.Printf("columns of %s: %v\n", t.Name, err)
					continue
				}
				for _, col := range cols {
					pterm.Printf("  %s %s\n", col.Name, pterm.Gray(col.Type))
				}
			}
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve completions over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			addr := a.cfg.Server.Addr
			if c.IsSet("addr") {
				addr = c.String("addr")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.engine, a.provider, a.log)
			return srv.ListenAndServe(ctx, addr)
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
