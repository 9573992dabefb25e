// engine.go adapts the external JSONata evaluator. The engine itself is a
// black box; this file only compiles expressions, bounds their execution
// time and maps failures onto the application's error taxonomy.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	jsonata "github.com/blues/jsonata-go"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
)

func init() {
	// The JSONata 1.5 core implemented by the library predates $distinct,
	// which the unique-values and statistics expressions rely on.
	exts := map[string]jsonata.Extension{
		"distinct": {Func: distinctValues},
	}
	if err := jsonata.RegisterExts(exts); err != nil {
		panic(fmt.Sprintf("query: registering jsonata extensions: %v", err))
	}
}

// distinctValues returns the unique items of an array, preserving first-seen
// order.
func distinctValues(items []any) []any {
	out := make([]any, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := fmt.Sprintf("%T:%v", item, item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Engine evaluates JSONata expressions against in-memory data with a bounded
// execution time per query.
type Engine struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewEngine creates an engine whose evaluations are abandoned after timeout.
func NewEngine(timeout time.Duration) *Engine {
	return &Engine{
		timeout: timeout,
		logger:  logging.ForService("query-engine"),
	}
}

// Compile parses an expression, reporting malformed syntax as a query-syntax
// error so the API boundary can map it to a client failure.
func (e *Engine) Compile(expression string) (*jsonata.Expr, error) {
	expr, err := jsonata.Compile(expression)
	if err != nil {
		return nil, errors.New(err).
			Component("query-engine").
			Category(errors.CategoryQuerySyntax).
			Context("expression", expression).
			Build()
	}
	return expr, nil
}

// Eval compiles and evaluates an expression against data. An expression that
// evaluates to nothing yields a nil result, not an error.
func (e *Engine) Eval(ctx context.Context, expression string, data any) (any, error) {
	expr, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return e.evalCompiled(ctx, expr, expression, data)
}

type evalResult struct {
	value any
	err   error
}

// evalCompiled runs the evaluation in a watchdog goroutine. The library has
// no cancellation hook, so on timeout the goroutine is abandoned and the
// request fails; the buffered channel lets it finish and be collected.
func (e *Engine) evalCompiled(ctx context.Context, expr *jsonata.Expr, expression string, data any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resultChan := make(chan evalResult, 1)
	started := time.Now()
	go func() {
		value, err := expr.Eval(data)
		resultChan <- evalResult{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		if e.logger != nil {
			e.logger.Warn("Query evaluation abandoned",
				"expression", expression,
				"elapsed", time.Since(started),
				"cause", ctx.Err())
		}
		return nil, errors.New(ctx.Err()).
			Component("query-engine").
			Category(errors.CategoryTimeout).
			Context("expression", expression).
			Build()
	case res := <-resultChan:
		if res.err != nil {
			if errors.Is(res.err, jsonata.ErrUndefined) {
				// No results is a valid outcome, not a failure.
				return nil, nil
			}
			return nil, errors.New(res.err).
				Component("query-engine").
				Category(errors.CategoryQueryEval).
				Context("expression", expression).
				Build()
		}
		return res.value, nil
	}
}
