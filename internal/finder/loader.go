package finder

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
)

// facetOptions is the loaded option list of one facet.
type facetOptions struct {
	kind     facet.Kind
	options  []facet.Option
	defaults []string
	loaded   bool
}

// ObjectInfoMsg carries the object metadata used to resolve the record-type
// qualifier.
type ObjectInfoMsg struct {
	Info directory.ObjectInfo
	Err  error
}

// PicklistMsg carries one facet's option list. RecordTypeID is the qualifier
// the request was issued with.
type PicklistMsg struct {
	Kind         facet.Kind
	RecordTypeID string
	Picklist     directory.Picklist
	Err          error
}

// Options returns a copy of a facet's option list.
func (c *Component) Options(kind facet.Kind) []facet.Option {
	opts := c.facets[kind].options
	out := make([]facet.Option, len(opts))
	copy(out, opts)
	return out
}

// CategoryOptions returns the loaded business category options.
func (c *Component) CategoryOptions() []facet.Option { return c.Options(facet.Category) }

// CountyOptions returns the loaded county options.
func (c *Component) CountyOptions() []facet.Option { return c.Options(facet.County) }

// Defaults returns the default-values list of a facet: every option value
// in option order.
func (c *Component) Defaults(kind facet.Kind) []string {
	return cloneValues(c.facets[kind].defaults)
}

// OptionsLoaded reports whether a facet's options have arrived.
func (c *Component) OptionsLoaded(kind facet.Kind) bool { return c.facets[kind].loaded }

// RecordTypeID returns the resolved record-type qualifier, if any.
func (c *Component) RecordTypeID() (string, bool) { return c.recordTypeID, c.qualified }

// LoadOptions loads the facet option lists without dispatching a query. It
// is a no-op once the options are loading or loaded through Init.
func (c *Component) LoadOptions() tea.Cmd {
	if c.initialized || c.qualified {
		return nil
	}
	return c.loadFacetOptions()
}

// loadFacetOptions starts the facet option pipeline. With a fixed qualifier
// the picklists are requested right away; otherwise the object metadata is
// fetched first and the picklist requests follow from its message.
func (c *Component) loadFacetOptions() tea.Cmd {
	if c.cfg.RecordTypeID != "" || c.deps.Objects == nil {
		return c.SetRecordTypeID(c.cfg.RecordTypeID)
	}

	objects := c.deps.Objects
	object := c.cfg.ObjectAPIName
	timeout := c.cfg.QueryTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		info, err := objects.ObjectInfo(ctx, object)
		return ObjectInfoMsg{Info: info, Err: err}
	}
}

// SetRecordTypeID sets the record-type qualifier. When it differs from the
// current one, both facets are reloaded for the new qualifier.
func (c *Component) SetRecordTypeID(id string) tea.Cmd {
	if c.qualified && c.recordTypeID == id {
		return nil
	}
	c.recordTypeID = id
	c.qualified = true
	return tea.Batch(c.loadPicklist(facet.Category), c.loadPicklist(facet.County))
}

func (c *Component) loadPicklist(kind facet.Kind) tea.Cmd {
	meta := c.deps.Metadata
	rt := c.recordTypeID
	timeout := c.cfg.QueryTimeout
	return func() tea.Msg {
		if meta == nil {
			return PicklistMsg{Kind: kind, RecordTypeID: rt, Err: fmt.Errorf("%w: no metadata provider configured", directory.ErrUnavailable)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := meta.PicklistValues(ctx, directory.PicklistRequest{Field: kind.Field(), RecordTypeID: rt})
		return PicklistMsg{Kind: kind, RecordTypeID: rt, Picklist: p, Err: err}
	}
}

func (c *Component) handleObjectInfo(msg ObjectInfoMsg) tea.Cmd {
	if msg.Err != nil {
		slog.Warn("loading object info failed", slog.String("object", c.cfg.ObjectAPIName), slog.String("error", msg.Err.Error()))
		c.notifyError(TitleRecordTypeFailed, directory.FailureMessage(msg.Err))
		return nil
	}

	id, ok := directory.ResolveRecordTypeID(msg.Info, c.cfg.RecordTypeName)
	if !ok {
		slog.Warn("record type not found, using object default",
			slog.String("record_type", c.cfg.RecordTypeName),
			slog.String("default", msg.Info.DefaultRecordTypeID),
		)
		id = msg.Info.DefaultRecordTypeID
	}
	return c.SetRecordTypeID(id)
}

func (c *Component) handlePicklist(msg PicklistMsg) {
	if msg.RecordTypeID != c.recordTypeID {
		slog.Debug("dropping picklist for superseded record type",
			slog.String("facet", msg.Kind.String()),
			slog.String("record_type", msg.RecordTypeID),
		)
		return
	}

	f := c.facets[msg.Kind]
	if msg.Err != nil {
		slog.Warn("loading facet options failed", slog.String("facet", msg.Kind.String()), slog.String("error", msg.Err.Error()))
		c.notifyError(msg.Kind.LoadErrorTitle(), directory.FailureMessage(msg.Err))
		return
	}

	f.options = facet.FromPicklist(msg.Picklist)
	f.defaults = facet.Values(f.options)
	f.loaded = true
}
