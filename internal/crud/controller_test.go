package crud

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/notify"
)

// fakeStore is an in-memory Store that records the order of calls.
type fakeStore struct {
	mu      sync.Mutex
	items   []model.Department
	nextID  int64
	events  []string
	listErr error
	saveErr error
	delErr  error
	onList  func()
}

func newFakeStore(n int) *fakeStore {
	s := &fakeStore{nextID: 1}
	for i := 0; i < n; i++ {
		s.items = append(s.items, model.Department{ID: s.nextID, Name: "Dept"})
		s.nextID++
	}
	return s
}

func (s *fakeStore) log(e string) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *fakeStore) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func (s *fakeStore) List(_ context.Context, req model.PageRequest) (model.Page[model.Department], error) {
	s.log("list")
	if s.onList != nil {
		s.onList()
	}
	if s.listErr != nil {
		return model.Page[model.Department]{}, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := min(req.Page*req.Size, len(s.items))
	end := min(start+req.Size, len(s.items))
	return model.Page[model.Department]{
		Items:      append([]model.Department(nil), s.items[start:end]...),
		Page:       req.Page,
		PageSize:   req.Size,
		TotalCount: int64(len(s.items)),
	}, nil
}

func (s *fakeStore) Create(_ context.Context, d model.Department) (model.Department, error) {
	s.log("create")
	if s.saveErr != nil {
		return d, s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID
	s.nextID++
	s.items = append(s.items, d)
	return d, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, d model.Department) (model.Department, error) {
	s.log("update")
	if s.saveErr != nil {
		return d, s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			d.ID = id
			s.items[i] = d
			return d, nil
		}
	}
	return d, apperrors.NotFound("missing")
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	s.log("delete")
	if s.delErr != nil {
		return s.delErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("missing")
}

func newController(t *testing.T, store *fakeStore, mutate ...func(*Config[model.Department])) (*Controller[model.Department], *notify.Channel) {
	t.Helper()
	ch := notify.NewChannel()
	cfg := Config[model.Department]{Labels: DepartmentLabels}
	for _, m := range mutate {
		m(&cfg)
	}
	return New(Options[model.Department]{Store: store, Notifier: ch, Config: cfg}), ch
}

func current(t *testing.T, ch *notify.Channel) notify.Notification {
	t.Helper()
	n, ok := ch.Current()
	require.True(t, ok, "expected a notification")
	return n
}

func TestController_Pagination(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, newFakeStore(23))

	require.NoError(t, c.LoadPage(ctx))
	s := c.Snapshot()
	assert.Len(t, s.Items, 10)
	assert.Equal(t, int64(23), s.TotalCount)
	assert.Equal(t, 10, s.PageSize)
	assert.False(t, s.Loading)

	require.NoError(t, c.ChangePage(ctx, 2))
	s = c.Snapshot()
	assert.Equal(t, 2, s.Page)
	assert.Len(t, s.Items, 3)
	assert.Equal(t, int64(21), s.Items[0].ID)

	require.NoError(t, c.ChangePageSize(ctx, 25))
	s = c.Snapshot()
	assert.Equal(t, 0, s.Page)
	assert.Len(t, s.Items, 23)
}

func TestController_InvalidPagingLeavesState(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(23)
	c, _ := newController(t, store)
	require.NoError(t, c.ChangePage(ctx, 1))
	before := c.Snapshot()
	calls := len(store.Events())

	assert.ErrorIs(t, c.ChangePage(ctx, -1), model.ErrInvalidPage)
	assert.ErrorIs(t, c.ChangePageSize(ctx, 0), model.ErrInvalidPageSize)

	after := c.Snapshot()
	assert.Equal(t, before.Page, after.Page)
	assert.Equal(t, before.PageSize, after.PageSize)
	assert.Equal(t, before.Items, after.Items)
	assert.Len(t, store.Events(), calls, "rejected paging must not reach the store")
}

func TestController_LoadFailureEmptiesItems(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(5)
	c, ch := newController(t, store)
	require.NoError(t, c.LoadPage(ctx))

	store.listErr = apperrors.FromStatus(500, "")
	require.Error(t, c.LoadPage(ctx))

	s := c.Snapshot()
	assert.Empty(t, s.Items)
	assert.Equal(t, int64(0), s.TotalCount)
	assert.False(t, s.Loading)
	n := current(t, ch)
	assert.Equal(t, notify.SeverityError, n.Severity)
	assert.Equal(t, "Failed to fetch departments.", n.Message)
}

func TestController_LoadingSetDuringFetch(t *testing.T) {
	store := newFakeStore(1)
	c, _ := newController(t, store)
	var during bool
	store.onList = func() { during = c.Snapshot().Loading }
	require.NoError(t, c.LoadPage(context.Background()))
	assert.True(t, during)
	assert.False(t, c.Snapshot().Loading)
}

func TestController_SubmitCreateOrdering(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(0)
	c, ch := newController(t, store)

	ch.Subscribe(func(n notify.Notification) {
		if n.Open {
			store.log("notify:" + string(n.Severity))
		}
	})
	var editOpenDuringReload bool
	store.onList = func() { editOpenDuringReload = c.Snapshot().EditOpen }

	require.NoError(t, c.OpenCreate())
	require.NoError(t, c.Submit(ctx, model.Department{Name: "Ops"}))

	assert.Equal(t, []string{"create", "notify:success", "list"}, store.Events())
	assert.True(t, editOpenDuringReload, "edit surface closes after the reload")
	assert.Equal(t, "Department created successfully!", current(t, ch).Message)

	s := c.Snapshot()
	assert.False(t, s.EditOpen)
	assert.False(t, s.Submitting)
	assert.Nil(t, s.Selected)
	assert.Len(t, s.Items, 1)
}

func TestController_SubmitUpdatesSelected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(3)
	c, ch := newController(t, store)
	require.NoError(t, c.LoadPage(ctx))

	target := c.Snapshot().Items[1]
	require.NoError(t, c.OpenEdit(target))
	require.NoError(t, c.Submit(ctx, model.Department{Name: "Renamed"}))

	assert.Contains(t, store.Events(), "update")
	assert.Equal(t, "Department updated successfully!", current(t, ch).Message)
	assert.Equal(t, "Renamed", c.Snapshot().Items[1].Name)
}

func TestController_SubmitFailureKeepsEditOpen(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(0)
	store.saveErr = apperrors.Conflict("Department with name 'Ops' already exists.")
	c, ch := newController(t, store)

	require.NoError(t, c.OpenCreate())
	require.Error(t, c.Submit(ctx, model.Department{Name: "Ops"}))

	s := c.Snapshot()
	assert.True(t, s.EditOpen)
	assert.False(t, s.Submitting)
	n := current(t, ch)
	assert.Equal(t, notify.SeverityError, n.Severity)
	assert.Equal(t, "Department with name 'Ops' already exists.", n.Message)
	assert.NotContains(t, store.Events(), "list")
}

// incompleteStore stores the entity but reports the follow-up step as failed.
type incompleteStore struct {
	*fakeStore
}

func (s incompleteStore) Create(ctx context.Context, d model.Department) (model.Department, error) {
	saved, err := s.fakeStore.Create(ctx, d)
	if err != nil {
		return saved, err
	}
	return saved, &model.IncompleteSaveError[model.Department]{
		Saved: saved,
		Err:   apperrors.NotFound("Employee not found with id: 999"),
	}
}

func TestController_SubmitIncompleteSaveReloadsAndSelects(t *testing.T) {
	ctx := context.Background()
	inner := newFakeStore(0)
	ch := notify.NewChannel()
	c := New(Options[model.Department]{
		Store:    incompleteStore{inner},
		Notifier: ch,
		Config:   Config[model.Department]{Labels: DepartmentLabels},
	})

	require.NoError(t, c.OpenCreate())
	err := c.Submit(ctx, model.Department{Name: "Ops"})
	require.Error(t, err)
	var incomplete *model.IncompleteSaveError[model.Department]
	require.ErrorAs(t, err, &incomplete)

	s := c.Snapshot()
	assert.True(t, s.EditOpen)
	require.NotNil(t, s.Selected)
	assert.Equal(t, int64(1), s.Selected.ID)
	assert.Len(t, s.Items, 1, "the stored entity is listed after the reload")
	assert.Equal(t, []string{"create", "list"}, inner.Events())

	n := current(t, ch)
	assert.Equal(t, notify.SeverityError, n.Severity)
	assert.Equal(t, "Employee not found with id: 999", n.Message)

	// The retry updates the stored entity instead of creating another.
	require.NoError(t, c.Submit(ctx, model.Department{Name: "Ops"}))
	assert.Equal(t, []string{"create", "list", "update", "list"}, inner.Events())
	assert.Len(t, c.Snapshot().Items, 1)
	assert.False(t, c.Snapshot().EditOpen)
}

func TestController_SubmitFallbackMessage(t *testing.T) {
	store := newFakeStore(0)
	store.saveErr = errors.New("boom")
	c, ch := newController(t, store)
	require.NoError(t, c.OpenCreate())
	require.Error(t, c.Submit(context.Background(), model.Department{Name: "Ops"}))
	assert.Equal(t, "Failed to save department.", current(t, ch).Message)
}

func TestController_SubmitValidationSkipsNetwork(t *testing.T) {
	store := newFakeStore(0)
	c, ch := newController(t, store, func(cfg *Config[model.Department]) {
		cfg.Validate = func(d model.Department) error {
			if d.Name == "" {
				return apperrors.ClientValidationField("name", "Name is required.")
			}
			return nil
		}
	})
	require.NoError(t, c.OpenCreate())

	err := c.Submit(context.Background(), model.Department{})
	require.Error(t, err)
	assert.True(t, apperrors.IsClientValidation(err))
	assert.Empty(t, store.Events())
	n := current(t, ch)
	assert.Equal(t, notify.SeverityWarning, n.Severity)
	assert.Equal(t, "Name is required.", n.Message)
	assert.True(t, c.Snapshot().EditOpen)
}

func TestController_SubmitRequiresOpenEdit(t *testing.T) {
	c, _ := newController(t, newFakeStore(0))
	assert.ErrorIs(t, c.Submit(context.Background(), model.Department{Name: "x"}), ErrEditClosed)
}

func TestController_DeleteFlow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2)
	c, ch := newController(t, store)
	require.NoError(t, c.LoadPage(ctx))

	require.NoError(t, c.RequestDelete(1))
	s := c.Snapshot()
	assert.True(t, s.ConfirmOpen)
	assert.Equal(t, int64(1), s.PendingDeleteID)

	require.NoError(t, c.ConfirmDelete(ctx))
	s = c.Snapshot()
	assert.False(t, s.ConfirmOpen)
	assert.Zero(t, s.PendingDeleteID)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, "Department deleted successfully!", current(t, ch).Message)
}

func TestController_ConfirmDeleteFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2)
	c, ch := newController(t, store)
	require.NoError(t, c.LoadPage(ctx))
	before := c.Snapshot().Items

	store.delErr = apperrors.FromStatus(403, "Access Denied")
	require.NoError(t, c.RequestDelete(2))
	require.Error(t, c.ConfirmDelete(ctx))

	s := c.Snapshot()
	assert.Equal(t, before, s.Items)
	assert.False(t, s.ConfirmOpen)
	assert.Zero(t, s.PendingDeleteID)
	n := current(t, ch)
	assert.Equal(t, notify.SeverityError, n.Severity)
	assert.Equal(t, "Access Denied", n.Message)
}

func TestController_CancelAndNothingPending(t *testing.T) {
	c, _ := newController(t, newFakeStore(1))
	require.NoError(t, c.RequestDelete(1))
	c.CancelDelete()
	assert.False(t, c.Snapshot().ConfirmOpen)
	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNothingPending)
}

func TestController_SurfacesAreExclusive(t *testing.T) {
	c, _ := newController(t, newFakeStore(1))

	require.NoError(t, c.OpenCreate())
	assert.ErrorIs(t, c.RequestDelete(1), ErrSurfaceBusy)
	c.CloseEdit()

	require.NoError(t, c.RequestDelete(1))
	assert.ErrorIs(t, c.OpenEdit(model.Department{ID: 1}), ErrSurfaceBusy)
	assert.ErrorIs(t, c.OpenCreate(), ErrSurfaceBusy)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c, _ := newController(t, newFakeStore(2))
	require.NoError(t, c.LoadPage(context.Background()))
	require.NoError(t, c.OpenEdit(model.Department{ID: 1, Name: "A"}))

	s := c.Snapshot()
	s.Items[0].Name = "mutated"
	s.Selected.Name = "mutated"

	s2 := c.Snapshot()
	assert.Equal(t, "Dept", s2.Items[0].Name)
	assert.Equal(t, "A", s2.Selected.Name)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options[model.Department]{Store: newFakeStore(0), Notifier: notify.NewChannel()})
	assert.Equal(t, model.DefaultPageSize, c.Snapshot().PageSize)
	assert.NotNil(t, c.Snapshot().Items)
	assert.Panics(t, func() { New(Options[model.Department]{Notifier: notify.NewChannel()}) })
	assert.Panics(t, func() { New(Options[model.Department]{Store: newFakeStore(0)}) })
}

func TestLabels(t *testing.T) {
	l := EmployeeLabels
	assert.Equal(t, "Employee created successfully!", l.Created())
	assert.Equal(t, "Employee updated successfully!", l.Updated())
	assert.Equal(t, "Employee deleted successfully!", l.Deleted())
	assert.Equal(t, "Failed to fetch employees.", l.FetchFailed())
	assert.Equal(t, "Failed to fetch employee.", l.FetchOneFailed())
	assert.Equal(t, "Failed to save employee.", l.SaveFailed())
	assert.Equal(t, "Failed to delete employee.", l.DeleteFailed())
}
