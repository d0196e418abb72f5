package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/state"
)

// Draft is what the create form submits.
type Draft struct {
	Name  string
	Tags  []entry.Tag
	Types []entry.Type
}

// Controller issues remote writes and keeps the projection in step with them.
type Controller struct {
	store      docstore.Store
	state      *state.Store
	collection string
	notify     Notifier
	comp       *compensator
	now        func() time.Time
}

func newController(store docstore.Store, st *state.Store, collection string, notify Notifier, comp *compensator, now func() time.Time) *Controller {
	return &Controller{
		store:      store,
		state:      st,
		collection: collection,
		notify:     notify,
		comp:       comp,
		now:        now,
	}
}

// Create validates d, rejects duplicate names and writes a new entry. The
// entry joins the projection only after the store confirms it. Every outcome
// produces exactly one notification.
func (c *Controller) Create(ctx context.Context, d Draft) (entry.Entry, error) {
	name := entry.NormalizeName(d.Name)

	var blank []string
	if name == "" {
		blank = append(blank, "Name")
	}
	if len(d.Types) == 0 {
		blank = append(blank, "Class")
	}
	if len(blank) > 0 {
		return entry.Entry{}, c.invalid(&ValidationError{Fields: blank})
	}

	tags, err := entry.NormalizeTags(d.Tags)
	if err != nil {
		return entry.Entry{}, c.invalid(&ValidationError{Fields: []string{"Level"}, Reason: err.Error()})
	}
	types, err := entry.NormalizeTypes(d.Types)
	if err != nil {
		return entry.Entry{}, c.invalid(&ValidationError{Fields: []string{"Class"}, Reason: err.Error()})
	}

	m := c.comp.begin("create", name)

	existing, err := c.store.QueryByField(ctx, c.collection, entry.FieldName, name)
	if err != nil {
		c.comp.fail(m)
		glog.Errorf("Duplicate check for %q failed: %v", name, err)
		c.notify.Notify(false, "Could not reach the dictionary, try again", "Oops")
		return entry.Entry{}, fmt.Errorf("check duplicate %q: %w", name, err)
	}
	if len(existing) > 0 {
		c.comp.fail(m)
		return entry.Entry{}, c.duplicate(name)
	}

	fields := entry.Fields{
		Name:        name,
		Tags:        tags,
		Types:       types,
		DateCreated: entry.FormatDate(c.now()),
	}
	id, err := c.store.Create(ctx, c.collection, fields)
	if errors.Is(err, docstore.ErrConflict) {
		// Another writer got the name in between the check and the write.
		c.comp.fail(m)
		return entry.Entry{}, c.duplicate(name)
	}
	if err != nil {
		c.comp.fail(m)
		glog.Errorf("Create %q failed: %v", name, err)
		c.notify.Notify(false, "The word could not be saved", "Oops")
		return entry.Entry{}, fmt.Errorf("create %q: %w", name, err)
	}
	c.comp.confirm(m)

	created := entry.FromFields(id, fields)
	c.state.Dispatch(state.OptimisticAdd{Entry: created})
	c.state.Dispatch(state.ResetForm{})
	c.notify.Notify(true, "New word created", "Hop")
	glog.Infof("Created %q as %s", name, id)
	return created, nil
}

func (c *Controller) invalid(err *ValidationError) error {
	c.notify.Notify(false, err.Message(), "On it")
	return err
}

func (c *Controller) duplicate(name string) error {
	c.state.Dispatch(state.SetDuplicate{Value: true})
	c.notify.Notify(false, "That word is already in the dictionary", "Okay")
	glog.V(1).Infof("Rejected duplicate %q", name)
	return fmt.Errorf("%w: %q", ErrDuplicate, name)
}

// Favorite flips e's favorite flag locally, then remotely. If the write fails
// the flag is flipped back after the rollback delay, unless a push has
// replaced the entries since the flip.
func (c *Controller) Favorite(ctx context.Context, e entry.Entry) error {
	m := c.comp.begin("favorite", e.ID)
	since := c.state.Pushes()
	c.state.Dispatch(state.OptimisticFavorite{ID: e.ID})

	err := c.store.Update(ctx, c.collection, e.ID, map[string]any{entry.FieldFavorite: !e.Favorite})
	if err != nil {
		glog.Errorf("Favorite %q failed: %v", e.Name, err)
		c.notify.Notify(false, "The favorite did not stick", "Got it")
		c.comp.compensate(m, state.UnlessPushed{Action: state.OptimisticFavorite{ID: e.ID}, Since: since})
		return fmt.Errorf("favorite %q: %w", e.Name, err)
	}
	c.comp.confirm(m)

	if !e.Favorite {
		c.notify.Notify(true, "Added to favorites", "Nice")
	}
	return nil
}

// Delete removes e locally, then remotely. index is e's position in the
// current entry list, or -1 to look it up. If the remote delete fails the
// entry is re-inserted at that position after the rollback delay, unless a
// push has replaced the entries since the removal.
func (c *Controller) Delete(ctx context.Context, e entry.Entry, index int) error {
	if index < 0 {
		p := c.state.Snapshot()
		index = p.IndexOf(e.ID)
		if index < 0 {
			index = len(p.Entries)
		}
	}

	m := c.comp.begin("delete", e.ID)
	since := c.state.Pushes()
	c.state.Dispatch(state.OptimisticRemove{ID: e.ID})

	label := strings.ToUpper(e.Name)
	if err := c.store.Delete(ctx, c.collection, e.ID); err != nil {
		glog.Errorf("Delete %q failed: %v", e.Name, err)
		c.notify.Notify(false, label+" could not be deleted", "Okay")
		c.comp.compensate(m, state.UnlessPushed{Action: state.RollbackInsert{Entry: e, Index: index}, Since: since})
		return fmt.Errorf("delete %q: %w", e.Name, err)
	}
	c.comp.confirm(m)

	c.notify.Notify(true, label+" deleted", "Bye")
	return nil
}
