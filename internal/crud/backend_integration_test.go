package crud

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/mocks"
	"github.com/zeroco/company-console/internal/notify"
	"github.com/zeroco/company-console/internal/service"
	"github.com/zeroco/company-console/internal/testutil"
	"github.com/zeroco/company-console/internal/validation"
)

func TestController_EmployeesAgainstBackend(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123", "ROLE_USER", "ROLE_ADMIN")
	backend.SeedEmployees(23)

	client, err := apiclient.New(apiclient.Options{
		BaseURL: backend.BaseURL(),
		Store:   mocks.NewMemoryTokenStoreWith(backend.IssueToken("admin")),
	})
	require.NoError(t, err)

	ch := notify.NewChannel()
	c := New(Options[model.Employee]{
		Store:    service.NewEmployeeService(client, nil),
		Notifier: ch,
		Config:   Config[model.Employee]{Labels: EmployeeLabels, Validate: validation.Employee},
	})

	require.NoError(t, c.LoadPage(ctx))
	assert.Len(t, c.Snapshot().Items, 10)
	require.NoError(t, c.ChangePage(ctx, 2))
	assert.Len(t, c.Snapshot().Items, 3)
	assert.Equal(t, int64(23), c.Snapshot().TotalCount)

	require.NoError(t, c.OpenCreate())
	err = c.Submit(ctx, model.Employee{FirstName: "Ada"})
	require.Error(t, err)
	n, _ := ch.Current()
	assert.Equal(t, notify.SeverityWarning, n.Severity)
	assert.Equal(t, 0, backend.CountRequests(http.MethodPost, "/employees"))

	require.NoError(t, c.Submit(ctx, model.Employee{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		HireDate: model.NewDate(2024, 3, 1), JobTitle: "Analyst",
	}))
	n, _ = ch.Current()
	assert.Equal(t, "Employee created successfully!", n.Message)
	assert.Equal(t, int64(24), c.Snapshot().TotalCount)
	assert.Len(t, c.Snapshot().Items, 4)
}

func TestController_ProjectRetryAfterFailedAssignment(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123", "ROLE_USER", "ROLE_ADMIN")
	emps := backend.SeedEmployees(1)

	client, err := apiclient.New(apiclient.Options{
		BaseURL: backend.BaseURL(),
		Store:   mocks.NewMemoryTokenStoreWith(backend.IssueToken("admin")),
	})
	require.NoError(t, err)

	ch := notify.NewChannel()
	c := New(Options[model.Project]{
		Store:    service.NewProjectService(client, nil),
		Notifier: ch,
		Config:   Config[model.Project]{Labels: ProjectLabels, Validate: validation.Project},
	})

	require.NoError(t, c.OpenCreate())
	require.Error(t, c.Submit(ctx, model.Project{Name: "Apollo"}.WithEmployeeIDs([]int64{999})))

	s := c.Snapshot()
	assert.True(t, s.EditOpen)
	require.NotNil(t, s.Selected)
	assert.Equal(t, int64(1), s.TotalCount, "the stored project is listed")
	n, _ := ch.Current()
	assert.Equal(t, notify.SeverityError, n.Severity)

	require.NoError(t, c.Submit(ctx, model.Project{Name: "Apollo"}.WithEmployeeIDs([]int64{emps[0].ID})))
	assert.Equal(t, 1, backend.CountRequests(http.MethodPost, "/projects"))
	assert.Equal(t, int64(1), c.Snapshot().TotalCount)
	stored, ok := backend.Project(s.Selected.ID)
	require.True(t, ok)
	assert.Equal(t, []int64{emps[0].ID}, stored.EmployeeIDs())
}
