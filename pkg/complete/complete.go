package complete

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tentacle-scylla/sqlcomplete/internal/logging"
	"github.com/tentacle-scylla/sqlcomplete/pkg/grammar"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// Engine runs the completion pipeline against a schema provider and a
// keyword grammar. An Engine holds no per-request state and is safe for
// concurrent use when its provider is.
type Engine struct {
	provider schema.Provider
	grammar  *grammar.Grammar
	opts     Options
	log      *zap.Logger
}

// NewEngine creates an engine. A nil grammar uses grammar.Default and nil
// options use DefaultOptions. provider may be nil, in which case only
// keywords are proposed.
func NewEngine(provider schema.Provider, g *grammar.Grammar, opts *Options) *Engine {
	if g == nil {
		g = grammar.Default()
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	e := &Engine{
		provider: provider,
		grammar:  g,
		opts:     *opts,
		log:      zap.NewNop(),
	}
	if e.opts.KeywordCase == "" {
		e.opts.KeywordCase = KeywordUpper
	}
	return e
}

// WithLogger sets the logger and returns the engine for chaining.
func (e *Engine) WithLogger(l *zap.Logger) *Engine {
	e.log = logging.OrNop(l).With(zap.String(logging.FieldComponent, "complete"))
	return e
}

// Complete returns the ordered proposals for the cursor position.
func (e *Engine) Complete(ctx context.Context, req Request) ([]Proposal, error) {
	res, err := e.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Proposals, nil
}

// Analyze is like Complete but also returns the resolved context and scope.
func (e *Engine) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := validateCursor(req.Text, req.Cursor); err != nil {
		return nil, err
	}
	start := time.Now()

	tokens := tokenize.Tokenize(req.Text)
	cc, err := ResolveContext(tokens, req.Cursor)
	if err != nil {
		return nil, err
	}
	scope := ResolveScope(tokenize.StatementAt(tokens, req.Cursor).Tokens, req.Cursor)

	gen := &generator{provider: e.provider, grammar: e.grammar, opts: &e.opts, log: e.log}
	proposals := gen.generate(ctx, cc, scope)

	e.log.Debug("completed",
		zap.Int(logging.FieldCursor, req.Cursor),
		zap.String(logging.FieldClause, string(cc.Clause)),
		zap.String(logging.FieldPrefix, cc.Prefix),
		zap.String(logging.FieldQualifier, cc.Qualifier),
		zap.Int(logging.FieldCount, len(proposals)),
		zap.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))

	return &Result{Context: cc, Scope: scope, Proposals: proposals}, nil
}

// validateCursor checks that cursor is a rune boundary within text.
func validateCursor(text string, cursor int) error {
	if cursor < 0 || cursor > len(text) {
		return types.InvalidArgumentf("cursor %d outside text of length %d", cursor, len(text))
	}
	if cursor < len(text) && !utf8.RuneStart(text[cursor]) {
		return types.InvalidArgumentf("cursor %d is not on a character boundary", cursor)
	}
	return nil
}
