package compose

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"uxguard/internal/retrieval"
)

// DefaultTimeout bounds the single external call a query may make.
const DefaultTimeout = 30 * time.Second

var errNoClient = errors.New("no model client configured")

// FormattedAnswer is what the presentation layers render. Markdown holds the
// composed briefing or, when Composed is false, the curated markdown
// untouched. Result always carries the structured entries so exports never
// depend on model output.
type FormattedAnswer struct {
	Query    string
	Markdown string
	Composed bool
	Result   *retrieval.QueryResult
}

// Composer phrases retrieval results through a model client.
type Composer struct {
	client  Client
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// New creates a composer. A nil client is allowed and routes every query to
// the curated fallback.
func New(client Client, timeout time.Duration, logger *zap.SugaredLogger) *Composer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Composer{client: client, timeout: timeout, logger: logger}
}

// Enabled reports whether a model client is configured.
func (c *Composer) Enabled() bool {
	return c.client != nil
}

// Compose sends one constrained request and returns the phrased answer. One
// attempt with a bounded timeout; any failure or empty response comes back
// as a *CompositionError.
func (c *Composer) Compose(ctx context.Context, res *retrieval.QueryResult) (*FormattedAnswer, error) {
	if c.client == nil {
		return nil, &CompositionError{Err: errNoClient}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.client.CompleteWithSystem(ctx, systemPrompt, BuildPrompt(res))
	if err != nil {
		return nil, &CompositionError{Provider: c.client.Name(), Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, &CompositionError{Provider: c.client.Name(), Err: errors.New("empty completion")}
	}

	c.logger.Debugf("composed answer via %s in %v (%d chars)", c.client.Name(), time.Since(start).Round(time.Millisecond), len(out))
	return &FormattedAnswer{
		Query:    res.Query,
		Markdown: out,
		Composed: true,
		Result:   res,
	}, nil
}

// Fallback renders the curated entries without rephrasing.
func Fallback(res *retrieval.QueryResult) *FormattedAnswer {
	return &FormattedAnswer{
		Query:    res.Query,
		Markdown: CuratedMarkdown(res),
		Composed: false,
		Result:   res,
	}
}

// ComposeOrFallback never fails: on any composition error it logs the cause
// and serves the curated entries as-is.
func (c *Composer) ComposeOrFallback(ctx context.Context, res *retrieval.QueryResult) *FormattedAnswer {
	if c.client == nil {
		return Fallback(res)
	}
	ans, err := c.Compose(ctx, res)
	if err != nil {
		c.logger.Warnf("composition failed, serving curated entries: %v", err)
		return Fallback(res)
	}
	return ans
}
