// Package crud drives one paginated resource view: the current page, the edit
// surface, and the delete confirmation. Every outcome is reported through a
// notifier; callers render state from Snapshot.
package crud

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/notify"
)

var (
	// ErrSurfaceBusy is returned when the edit surface and the delete confirmation would both be open.
	ErrSurfaceBusy = errors.New("another dialog is open")
	// ErrEditClosed is returned by Submit when the edit surface is not open.
	ErrEditClosed = errors.New("edit surface is not open")
	// ErrNothingPending is returned by ConfirmDelete without a pending delete.
	ErrNothingPending = errors.New("no delete pending")
)

// Store is the resource client a controller drives.
type Store[T model.Entity] interface {
	List(ctx context.Context, req model.PageRequest) (model.Page[T], error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier receives user feedback.
type Notifier interface {
	Show(message string, severity notify.Severity)
}

// Config tunes a controller.
type Config[T model.Entity] struct {
	Labels Labels
	// PageSize is the initial rows per page; zero uses model.DefaultPageSize.
	PageSize int
	// Validate runs before Submit contacts the backend. A failure is shown as a warning.
	Validate func(T) error
	Logger   *slog.Logger
}

// Options groups dependencies for Controller.
type Options[T model.Entity] struct {
	Store    Store[T] // Required
	Notifier Notifier // Required
	Config   Config[T]
}

// State is a copy of the controller's view state.
type State[T model.Entity] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int64
	Loading    bool

	// Selected is the entity being edited; nil means the edit surface creates.
	Selected   *T
	EditOpen   bool
	Submitting bool

	// PendingDeleteID is zero when no delete awaits confirmation.
	PendingDeleteID int64
	ConfirmOpen     bool
}

// Controller holds the state of one resource view. Overlapping loads are not
// cancelled; whichever completes last determines the items shown.
type Controller[T model.Entity] struct {
	store    Store[T]
	notifier Notifier
	labels   Labels
	validate func(T) error
	logger   *slog.Logger

	mu    sync.Mutex
	state State[T]
}

// New constructs a Controller. It panics when Store or Notifier is missing.
func New[T model.Entity](opts Options[T]) *Controller[T] {
	if opts.Store == nil {
		panic("crud: Options.Store is required")
	}
	if opts.Notifier == nil {
		panic("crud: Options.Notifier is required")
	}
	size := opts.Config.PageSize
	if size <= 0 {
		size = model.DefaultPageSize
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller[T]{
		store:    opts.Store,
		notifier: opts.Notifier,
		labels:   opts.Config.Labels,
		validate: opts.Config.Validate,
		logger:   logger.With("view", opts.Config.Labels.Plural),
		state:    State[T]{Items: []T{}, PageSize: size},
	}
}

// Labels returns the display names in use.
func (c *Controller[T]) Labels() Labels { return c.labels }

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	if c.state.Selected != nil {
		sel := *c.state.Selected
		s.Selected = &sel
	}
	return s
}

// LoadPage fetches the current page. On failure the items are emptied and an
// error notification is shown.
func (c *Controller[T]) LoadPage(ctx context.Context) error {
	c.mu.Lock()
	req := model.PageRequest{Page: c.state.Page, Size: c.state.PageSize}
	c.state.Loading = true
	c.mu.Unlock()

	page, err := c.store.List(ctx, req)

	c.mu.Lock()
	c.state.Loading = false
	if err != nil {
		c.state.Items = []T{}
		c.state.TotalCount = 0
	} else {
		c.state.Items = page.Items
		c.state.TotalCount = page.TotalCount
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.WarnContext(ctx, "page load failed", "page", req.Page, "size", req.Size, "error", err)
		c.notifier.Show(apperrors.UserMessage(err, c.labels.FetchFailed()), notify.SeverityError)
		return err
	}
	return nil
}

// ChangePage moves to page and loads it. A negative page leaves the state unchanged.
func (c *Controller[T]) ChangePage(ctx context.Context, page int) error {
	if page < 0 {
		return model.ErrInvalidPage
	}
	c.mu.Lock()
	c.state.Page = page
	c.mu.Unlock()
	return c.LoadPage(ctx)
}

// ChangePageSize sets the rows per page, returns to the first page, and loads it.
// A size below one leaves the state unchanged.
func (c *Controller[T]) ChangePageSize(ctx context.Context, size int) error {
	if size <= 0 {
		return model.ErrInvalidPageSize
	}
	c.mu.Lock()
	c.state.PageSize = size
	c.state.Page = 0
	c.mu.Unlock()
	return c.LoadPage(ctx)
}

// OpenCreate opens the edit surface with no selection.
func (c *Controller[T]) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.ConfirmOpen {
		return ErrSurfaceBusy
	}
	c.state.Selected = nil
	c.state.EditOpen = true
	return nil
}

// OpenEdit opens the edit surface for item.
func (c *Controller[T]) OpenEdit(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.ConfirmOpen {
		return ErrSurfaceBusy
	}
	c.state.Selected = &item
	c.state.EditOpen = true
	return nil
}

// CloseEdit closes the edit surface and clears the selection.
func (c *Controller[T]) CloseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.EditOpen = false
	c.state.Selected = nil
}

// Submit creates item when nothing is selected, otherwise updates the selected
// entity. On success the current page is reloaded and the edit surface closes;
// on failure it stays open. A *model.IncompleteSaveError also reloads the page
// and selects the stored entity, so a retry updates it.
func (c *Controller[T]) Submit(ctx context.Context, item T) error {
	if c.validate != nil {
		if err := c.validate(item); err != nil {
			c.notifier.Show(apperrors.UserMessage(err, c.labels.SaveFailed()), notify.SeverityWarning)
			return err
		}
	}

	c.mu.Lock()
	if !c.state.EditOpen {
		c.mu.Unlock()
		return ErrEditClosed
	}
	selected := c.state.Selected
	c.state.Submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Submitting = false
		c.mu.Unlock()
	}()

	var (
		err     error
		message string
	)
	if selected == nil {
		_, err = c.store.Create(ctx, item)
		message = c.labels.Created()
	} else {
		_, err = c.store.Update(ctx, (*selected).GetID(), item)
		message = c.labels.Updated()
	}
	var incomplete *model.IncompleteSaveError[T]
	if errors.As(err, &incomplete) {
		// The entity exists now: reload, and retry as an update of it.
		c.logger.WarnContext(ctx, "save incomplete", "id", incomplete.Saved.GetID(), "error", err)
		saved := incomplete.Saved
		c.mu.Lock()
		c.state.Selected = &saved
		c.mu.Unlock()
		_ = c.LoadPage(ctx)
		c.notifier.Show(apperrors.UserMessage(err, c.labels.SaveFailed()), notify.SeverityError)
		return err
	}
	if err != nil {
		c.logger.WarnContext(ctx, "save failed", "error", err)
		c.notifier.Show(apperrors.UserMessage(err, c.labels.SaveFailed()), notify.SeverityError)
		return err
	}

	c.notifier.Show(message, notify.SeveritySuccess)
	// A failed reload has already been reported; the save itself succeeded.
	_ = c.LoadPage(ctx)
	c.CloseEdit()
	return nil
}

// RequestDelete asks for confirmation before deleting id.
func (c *Controller[T]) RequestDelete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.EditOpen {
		return ErrSurfaceBusy
	}
	c.state.PendingDeleteID = id
	c.state.ConfirmOpen = true
	return nil
}

// CancelDelete closes the confirmation without deleting.
func (c *Controller[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PendingDeleteID = 0
	c.state.ConfirmOpen = false
}

// ConfirmDelete deletes the pending entity and reloads the page. The
// confirmation is closed whatever the outcome.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.state.PendingDeleteID
	open := c.state.ConfirmOpen
	c.mu.Unlock()
	if !open || id == 0 {
		return ErrNothingPending
	}

	defer c.CancelDelete()

	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "delete failed", "id", id, "error", err)
		c.notifier.Show(apperrors.UserMessage(err, c.labels.DeleteFailed()), notify.SeverityError)
		return err
	}
	c.notifier.Show(c.labels.Deleted(), notify.SeveritySuccess)
	_ = c.LoadPage(ctx)
	return nil
}
