package compose

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"uxguard/internal/knowledge"
	"uxguard/internal/retrieval"
)

type fakeClient struct {
	reply     string
	err       error
	calls     int
	gotSystem string
	gotUser   string
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSystem(ctx, "", prompt)
}

func (f *fakeClient) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.gotSystem = system
	f.gotUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Name() string { return "fake" }

// blockingClient only returns once the context is done.
type blockingClient struct{}

func (blockingClient) Complete(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingClient) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingClient) Name() string { return "blocking" }

func queryResult(t *testing.T) *retrieval.QueryResult {
	t.Helper()
	r := retrieval.New(knowledge.Embedded(), retrieval.DefaultConfig())
	res, err := r.Retrieve("facial recognition bias")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	return res
}

func TestComposeSuccess(t *testing.T) {
	client := &fakeClient{reply: "  A short briefing.  "}
	c := New(client, 0, nil)
	res := queryResult(t)

	ans, err := c.Compose(context.Background(), res)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !ans.Composed {
		t.Fatal("answer not marked composed")
	}
	if ans.Markdown != "A short briefing." {
		t.Fatalf("markdown = %q", ans.Markdown)
	}
	if ans.Result != res {
		t.Fatal("structured result not carried through")
	}
	if client.gotSystem == "" || !strings.Contains(client.gotUser, res.Query) {
		t.Fatal("client did not receive prompt and system instruction")
	}
}

func TestComposeFailureIsCompositionError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	c := New(client, 0, nil)

	_, err := c.Compose(context.Background(), queryResult(t))
	var cerr *CompositionError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *CompositionError, got %T: %v", err, err)
	}
	if cerr.Provider != "fake" {
		t.Fatalf("provider = %q", cerr.Provider)
	}
	if client.calls != 1 {
		t.Fatalf("client called %d times, want exactly one attempt", client.calls)
	}
}

func TestComposeEmptyReplyFails(t *testing.T) {
	client := &fakeClient{reply: "   \n  "}
	c := New(client, 0, nil)

	_, err := c.Compose(context.Background(), queryResult(t))
	var cerr *CompositionError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *CompositionError for empty reply, got %v", err)
	}
}

func TestComposeNilClient(t *testing.T) {
	c := New(nil, 0, nil)

	_, err := c.Compose(context.Background(), queryResult(t))
	var cerr *CompositionError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *CompositionError, got %v", err)
	}
}

func TestComposeAppliesTimeout(t *testing.T) {
	c := New(blockingClient{}, 50*time.Millisecond, nil)

	start := time.Now()
	_, err := c.Compose(context.Background(), queryResult(t))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("compose blocked for %v", elapsed)
	}
}

func TestComposeOrFallbackServesCuratedOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("dial tcp: connection refused")}
	c := New(client, 0, nil)
	res := queryResult(t)

	ans := c.ComposeOrFallback(context.Background(), res)
	if ans.Composed {
		t.Fatal("answer marked composed after failure")
	}
	if ans.Markdown != CuratedMarkdown(res) {
		t.Fatal("fallback did not serve the curated markdown")
	}
	top := res.Matches[0].Risk
	if !strings.Contains(ans.Markdown, top.Title) {
		t.Fatalf("fallback missing top entry %q", top.Title)
	}
	if !strings.Contains(ans.Markdown, "[1]") {
		t.Fatal("fallback missing citations")
	}
}

func TestComposeOrFallbackUsesModelWhenUp(t *testing.T) {
	client := &fakeClient{reply: "Phrased just fine."}
	c := New(client, 0, nil)

	ans := c.ComposeOrFallback(context.Background(), queryResult(t))
	if !ans.Composed || ans.Markdown != "Phrased just fine." {
		t.Fatalf("answer = %+v", ans)
	}
}

func TestComposeOrFallbackNilClient(t *testing.T) {
	c := New(nil, 0, nil)
	res := queryResult(t)

	ans := c.ComposeOrFallback(context.Background(), res)
	if ans.Composed {
		t.Fatal("nil client cannot compose")
	}
	if ans.Markdown == "" {
		t.Fatal("fallback produced no markdown")
	}
}

func TestEnabled(t *testing.T) {
	if New(nil, 0, nil).Enabled() {
		t.Fatal("composer without client reports enabled")
	}
	if !New(&fakeClient{}, 0, nil).Enabled() {
		t.Fatal("composer with client reports disabled")
	}
}
