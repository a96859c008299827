package finder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// fakeDirectory records every request and answers from canned data.
type fakeDirectory struct {
	mu sync.Mutex

	queries   []directory.Query
	queryErr  error
	respond   func(q directory.Query) []record.Summary
	picklists map[string][]directory.PicklistValue
	pickErr   map[string]error
	pickReqs  []directory.PicklistRequest
	info      directory.ObjectInfo
	infoErr   error
	infoCalls int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		picklists: map[string][]directory.PicklistValue{
			facet.FieldBusinessCategory: {
				{Label: "Retail", Value: "Retail"},
				{Label: "Construction", Value: "Construction"},
				{Label: "Professional Services", Value: "Professional_Services"},
			},
			facet.FieldCounty: {
				{Label: "Salt Lake", Value: "Salt_Lake"},
				{Label: "Utah", Value: "Utah"},
			},
		},
		pickErr: map[string]error{},
		info: directory.ObjectInfo{
			APIName:             "Account",
			DefaultRecordTypeID: "012000000000000AAA",
			RecordTypeInfos: map[string]directory.RecordTypeInfo{
				"012000000000000AAA": {RecordTypeID: "012000000000000AAA", Name: "Master", Master: true},
				"0125f000000BizRAA": {RecordTypeID: "0125f000000BizRAA", Name: "Business Registration", Available: true},
			},
		},
	}
}

func (f *fakeDirectory) FilterRecords(ctx context.Context, q directory.Query) ([]record.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.respond != nil {
		return f.respond(q), nil
	}
	return []record.Summary{{ID: "a1b2c3d4e5f6", Name: "Beehive Builders"}}, nil
}

func (f *fakeDirectory) PicklistValues(ctx context.Context, req directory.PicklistRequest) (directory.Picklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pickReqs = append(f.pickReqs, req)
	if err := f.pickErr[req.Field]; err != nil {
		return directory.Picklist{}, err
	}
	return directory.Picklist{Field: req.Field, RecordTypeID: req.RecordTypeID, Values: f.picklists[req.Field]}, nil
}

func (f *fakeDirectory) ObjectInfo(ctx context.Context, object string) (directory.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeDirectory) GetRecord(ctx context.Context, id string) (record.Record, error) {
	return record.Record{}, fmt.Errorf("%w: %s", directory.ErrNotFound, id)
}

func (f *fakeDirectory) Close() error { return nil }

func (f *fakeDirectory) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeDirectory) lastQuery() directory.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

// notifications collects everything the component raises.
type notifications struct {
	got []Notification
}

func (n *notifications) Notify(note Notification) { n.got = append(n.got, note) }

func (n *notifications) titles() []string {
	out := make([]string, len(n.got))
	for i, note := range n.got {
		out[i] = note.Title
	}
	return out
}

type harness struct {
	c     *Component
	dir   *fakeDirectory
	notes *notifications
	nav   []Target
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{dir: newFakeDirectory(), notes: &notifications{}}
	h.c = New(cfg, Deps{
		Query:     h.dir,
		Metadata:  h.dir,
		Objects:   h.dir,
		Notifier:  h.notes,
		Navigator: NavigatorFunc(func(target Target) { h.nav = append(h.nav, target) }),
	})
	return h
}

// run executes cmd and feeds every resulting message back into the
// component, one at a time, the way the event loop would.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			h.run(sub)
		}
		return
	}
	h.run(h.c.Update(msg))
}

// initialized returns a harness whose Init pipeline has fully completed.
func initialized(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := newHarness(t, cfg)
	h.run(h.c.Init())
	return h
}

var errBoom = errors.New("boom")
