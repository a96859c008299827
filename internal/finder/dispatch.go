package finder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// Ordering decides which query responses are allowed to replace the
// displayed result set when several queries overlap.
type Ordering string

const (
	// OrderSequenced applies a response only if its query was issued after
	// the query whose response is currently displayed.
	OrderSequenced Ordering = "sequenced"
	// OrderLastResponse applies every response as it arrives, so a slow
	// response to an older query can overwrite a newer one.
	OrderLastResponse Ordering = "last-response"
)

// ParseOrdering validates an ordering name. The empty string selects
// OrderSequenced.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "", OrderSequenced:
		return OrderSequenced, nil
	case OrderLastResponse:
		return OrderLastResponse, nil
	}
	return "", fmt.Errorf("unknown query ordering %q (want %q or %q)", s, OrderSequenced, OrderLastResponse)
}

// QueryResultMsg carries the outcome of one dispatched query.
type QueryResultMsg struct {
	Seq     uint64
	Query   directory.Query
	Records []record.Summary
	Err     error
}

// Query returns the request the current filter state would produce.
func (c *Component) Query() directory.Query {
	s := c.state.clone()
	return directory.Query{
		SearchText: s.SearchText,
		Categories: s.Categories,
		Counties:   s.Counties,
	}
}

// dispatchQuery issues one query for the current filter state. The request
// is snapshotted here; the returned command only touches the snapshot.
func (c *Component) dispatchQuery() tea.Cmd {
	c.issued++
	c.inFlight++
	seq := c.issued
	q := c.Query()
	svc := c.deps.Query
	timeout := c.cfg.QueryTimeout

	slog.Debug("dispatching filter query",
		slog.Uint64("seq", seq),
		slog.String("search", q.SearchText),
		slog.Int("categories", len(q.Categories)),
		slog.Int("counties", len(q.Counties)),
	)

	return func() tea.Msg {
		if svc == nil {
			return QueryResultMsg{Seq: seq, Query: q, Err: fmt.Errorf("%w: no query service configured", directory.ErrUnavailable)}
		}
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		records, err := svc.FilterRecords(ctx, q)
		slog.Debug("filter query completed",
			slog.Uint64("seq", seq),
			slog.Int("records", len(records)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return QueryResultMsg{Seq: seq, Query: q, Records: records, Err: err}
	}
}

func (c *Component) handleQueryResult(msg QueryResultMsg) {
	if c.inFlight > 0 {
		c.inFlight--
	}

	if c.cfg.Ordering == OrderSequenced && msg.Seq <= c.applied {
		c.discarded++
		slog.Debug("discarding out-of-date query response",
			slog.Uint64("seq", msg.Seq),
			slog.Uint64("applied", c.applied),
			slog.Bool("failed", msg.Err != nil),
		)
		return
	}

	if msg.Err != nil {
		slog.Warn("filter query failed", slog.Uint64("seq", msg.Seq), slog.String("error", msg.Err.Error()))
		c.lastErr = msg.Err
		c.notifyError(TitleQueryFailed, directory.FailureMessage(msg.Err))
		return
	}
	c.lastErr = nil

	c.results = msg.Records
	if c.results == nil {
		c.results = []record.Summary{}
	}
	if msg.Seq > c.applied {
		c.applied = msg.Seq
	}
	c.version++
}
