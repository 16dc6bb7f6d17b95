package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/testutil"
)

func TestResource_ListPaginates(t *testing.T) {
	f := newFixture(t)
	seeded := f.backend.SeedEmployees(23)
	svc := NewEmployeeService(f.client, nil)

	page, err := svc.List(context.Background(), model.PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(23), page.TotalCount)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 3)
	assert.Equal(t, seeded[20].ID, page.Items[0].ID)
	assert.False(t, page.HasNext())

	reqs := f.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/employees", reqs[0].Path)
	assert.Equal(t, "page=2&size=10&sortBy=id&sortDir=asc", reqs[0].Query)
}

func TestResource_ListEmptyPageHasItems(t *testing.T) {
	f := newFixture(t)
	page, err := NewDepartmentService(f.client, nil).List(context.Background(), model.PageRequest{Size: 5})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestResource_ListRejectsBadRequestWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.client, nil)

	cases := []model.PageRequest{
		{Page: -1, Size: 10},
		{Page: 0, Size: 0},
		{Page: 0, Size: 10, SortDir: "sideways"},
	}
	for _, req := range cases {
		_, err := svc.List(context.Background(), req)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "%+v", req)
	}
	assert.Empty(t, f.backend.Requests())
}

func TestResource_CRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewDepartmentService(f.client, nil)

	created, err := svc.Create(ctx, model.Department{Name: "Engineering"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, model.Department{Name: "Platform", Location: testutil.StringPtr("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Berlin", *got.Location)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestResource_ErrorsKeepBackendMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewDepartmentService(f.client, nil)
	f.backend.SeedDepartment("Sales")

	_, err := svc.Create(ctx, model.Department{Name: "Sales"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, apperrors.UserMessage(err, "Failed to save department."), "Sales")

	_, err = svc.Create(ctx, model.Department{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Validation failed: name: must not be blank", apperrors.UserMessage(err, "fallback"))
}

func TestResource_ForbiddenForNonAdmin(t *testing.T) {
	f := newFixture(t, "ROLE_USER")
	_, err := NewDepartmentService(f.client, nil).Create(context.Background(), model.Department{Name: "Ops"})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, http.StatusForbidden, apperrors.GetStatus(err))
}

func TestResource_Count(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedEmployees(7)
	n, err := NewEmployeeService(f.client, nil).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "page=0&size=1&sortBy=id&sortDir=asc", f.backend.Requests()[0].Query)
}

func TestNewResource_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewResource[model.Employee](ResourceOptions{Path: "/employees"}) })
	f := newFixture(t)
	assert.Panics(t, func() { NewResource[model.Employee](ResourceOptions{API: f.client}) })
}
