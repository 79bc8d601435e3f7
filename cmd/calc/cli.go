package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/infix-calc/internal/calc"
	"github.com/DjordjeVuckovic/infix-calc/internal/report"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/factory"
	"github.com/DjordjeVuckovic/infix-calc/internal/suite"
	"github.com/DjordjeVuckovic/infix-calc/pkg/config/env"
	"github.com/alecthomas/kong"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultExpression = "1+2*3-4"

type CLI struct {
	LogLevel string `help:"Log level." default:"warn" enum:"debug,info,warn,error" env:"LOG_LEVEL"`
	History  bool   `help:"Record evaluations in the store selected by HISTORY_STORAGE."`

	Eval   EvalCmd   `cmd:"" default:"withargs" help:"Evaluate an expression."`
	Tokens TokensCmd `cmd:"" help:"Print the tokens of an expression."`
	Suite  SuiteCmd  `cmd:"" help:"Run an expression suite file."`
}

// app carries what every command needs once flags are parsed.
type app struct {
	ctx     context.Context
	stdout  io.Writer
	service *calc.Service
}

type EvalCmd struct {
	Expression string `arg:"" optional:"" default:"${default_expression}" help:"Expression to evaluate. Use -- before expressions starting with '-'."`
	Group      bool   `short:"g" help:"Group the digits of the result."`
}

func (c *EvalCmd) Run(a *app) error {
	ev, err := a.service.Evaluate(a.ctx, c.Expression)
	if err != nil {
		return err
	}

	result := fmt.Sprintf("%d", *ev.Result)
	if c.Group {
		result = message.NewPrinter(language.English).Sprintf("%d", *ev.Result)
	}
	fmt.Fprintf(a.stdout, "Expression evaluated to %s.\n", result)
	return nil
}

type TokensCmd struct {
	Expression string `arg:"" help:"Expression to tokenize."`
	JSON       bool   `short:"j" help:"Print tokens as JSON."`
}

func (c *TokensCmd) Run(a *app) error {
	tokens, err := a.service.Tokenize(c.Expression)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(a.stdout)
		return enc.Encode(tokens)
	}

	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.String())
	}
	fmt.Fprintln(a.stdout, strings.Join(parts, " "))
	return nil
}

type SuiteCmd struct {
	File   string `arg:"" type:"existingfile" help:"Suite YAML file."`
	Runs   int    `help:"Override the number of runs per case."`
	Output string `short:"o" type:"path" help:"Also write a JSON report to this path."`
}

func (c *SuiteCmd) Run(a *app) error {
	s, err := suite.LoadFromFile(c.File)
	if err != nil {
		return err
	}
	if c.Runs > 0 {
		s.Runs = c.Runs
	}

	res, err := suite.NewRunner(a.service).Run(a.ctx, s)
	if err != nil {
		return err
	}

	r := report.Generate(res)
	report.WriteTable(r, a.stdout)

	if c.Output != "" {
		if err := report.WriteJSON(r, c.Output); err != nil {
			return err
		}
		slog.Info("Report written", "path", c.Output)
	}

	if r.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", r.Summary.Failed, r.Summary.Total)
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("calc"),
		kong.Description("Evaluate infix integer expressions with +, -, * and /."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.Vars{"default_expression": defaultExpression},
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err == nil {
		slog.SetLogLoggerLevel(level)
	}

	ctx := context.Background()
	opts := []calc.Option{}
	if cli.History {
		store, cleanup, err := openHistory(ctx)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer cleanup()
		if store != nil {
			opts = append(opts, calc.WithStorer(store))
		}
	}

	a := &app{
		ctx:     ctx,
		stdout:  stdout,
		service: calc.New(opts...),
	}

	if err := kctx.Run(a); err != nil {
		fmt.Fprintln(stderr, describe(err))
		return 1
	}
	return 0
}

func openHistory(ctx context.Context) (storage.History, func(), error) {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), ".env"); err != nil {
		slog.Debug("No .env loaded", "error", err)
	}

	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, func() {}, err
	}
	return factory.New(ctx, cfg)
}

// describe prefers the human sentence for expression errors.
func describe(err error) string {
	if errors.Is(err, calc.ErrHistory) {
		return err.Error()
	}
	if _, ok := calc.Classify(err); ok {
		return calc.Describe(err)
	}
	return err.Error()
}
