// Package finder implements the directory finder component: it owns the
// current filter state, turns every change into exactly one query against
// the directory, loads the facet option lists, and delegates record
// navigation.
//
// The component is driven by a Bubble Tea event loop. Every operation that
// needs I/O returns a tea.Cmd; the command's result comes back through
// Update as a message. Component itself is not safe for concurrent use and
// needs no locking: all of its state is touched only from Update and the
// mutation methods, which the event loop serialises.
package finder

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
)

const (
	DefaultRecordTypeName = "Business Registration"
	DefaultQueryTimeout   = 30 * time.Second
)

// Config controls how the component talks to the directory.
type Config struct {
	// ObjectAPIName is the object whose metadata holds the record types.
	ObjectAPIName string
	// RecordTypeName selects the record type qualifier by name.
	RecordTypeName string
	// RecordTypeID, when set, is used as a fixed qualifier and the object
	// metadata lookup is skipped.
	RecordTypeID string
	Ordering     Ordering
	QueryTimeout time.Duration
}

// Deps are the collaborators the component consumes.
type Deps struct {
	Query     directory.QueryService
	Metadata  directory.MetadataProvider
	Objects   directory.ObjectInfoProvider
	Navigator Navigator
	Notifier  Notifier
}

// Component is the finder's filter state holder and query dispatcher.
type Component struct {
	cfg  Config
	deps Deps

	state FilterState

	facets       map[facet.Kind]*facetOptions
	recordTypeID string
	qualified    bool

	results []record.Summary
	version uint64
	lastErr error

	initialized bool
	issued      uint64
	applied     uint64
	inFlight    int
	discarded   int
}

// New creates a component with empty filters. Nothing is fetched until Init.
func New(cfg Config, deps Deps) *Component {
	if cfg.ObjectAPIName == "" {
		cfg.ObjectAPIName = record.ObjectAPIName
	}
	if cfg.RecordTypeName == "" {
		cfg.RecordTypeName = DefaultRecordTypeName
	}
	if cfg.Ordering == "" {
		cfg.Ordering = OrderSequenced
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if deps.Notifier == nil {
		deps.Notifier = logNotifier{}
	}
	if deps.Navigator == nil {
		deps.Navigator = NavigatorFunc(func(t Target) {
			slog.Warn("navigation requested without a navigator", slog.String("record_id", t.RecordID))
		})
	}

	return &Component{
		cfg:   cfg,
		deps:  deps,
		state: newFilterState(),
		facets: map[facet.Kind]*facetOptions{
			facet.Category: {kind: facet.Category},
			facet.County:   {kind: facet.County},
		},
		results: []record.Summary{},
	}
}

// Init runs the one-shot initialisation: it starts loading facet options and
// dispatches the initial query with empty filters. Later calls return nil.
func (c *Component) Init() tea.Cmd {
	if c.initialized {
		return nil
	}
	c.initialized = true
	return tea.Batch(c.loadFacetOptions(), c.dispatchQuery())
}

// Initialized reports whether Init has run.
func (c *Component) Initialized() bool { return c.initialized }

// Update handles the component's own messages and ignores everything else.
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case QueryResultMsg:
		c.handleQueryResult(msg)
		return nil
	case ObjectInfoMsg:
		return c.handleObjectInfo(msg)
	case PicklistMsg:
		c.handlePicklist(msg)
		return nil
	}
	return nil
}

// Results returns a copy of the displayed result set.
func (c *Component) Results() []record.Summary {
	out := make([]record.Summary, len(c.results))
	copy(out, c.results)
	return out
}

// ResultsVersion increments every time the displayed result set is replaced.
func (c *Component) ResultsVersion() uint64 { return c.version }

// Loading reports whether any dispatched query has not completed yet.
func (c *Component) Loading() bool { return c.inFlight > 0 }

// Dispatched returns how many queries have been issued.
func (c *Component) Dispatched() uint64 { return c.issued }

// Current reports whether the displayed results answer the most recently
// dispatched query.
func (c *Component) Current() bool { return c.inFlight == 0 && c.applied == c.issued }

// Discarded returns how many responses were dropped as out of date.
func (c *Component) Discarded() int { return c.discarded }
