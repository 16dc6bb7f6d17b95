package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	t.Run("round trips calendar dates", func(t *testing.T) {
		emp := Employee{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", HireDate: NewDate(2022, time.August, 15)}
		data, err := json.Marshal(emp)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"hireDate":"2022-08-15"`)

		var decoded Employee
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "2022-08-15", decoded.HireDate.String())
	})

	t.Run("zero date is omitted", func(t *testing.T) {
		data, err := json.Marshal(Employee{FirstName: "Jane"})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hireDate")
	})

	t.Run("accepts null and timestamps", func(t *testing.T) {
		var p Project
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Apollo","startDate":null,"endDate":"2024-03-01T00:00:00Z"}`), &p))
		assert.True(t, p.StartDate.IsZero())
		assert.Equal(t, "2024-03-01", p.EndDate.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"15/08/2022"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`12`), &d))
	})
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      PageRequest
		want    PageRequest
		wantErr bool
	}{
		{name: "defaults", in: PageRequest{Page: 0, Size: 10}, want: PageRequest{Page: 0, Size: 10, SortBy: "id", SortDir: "asc"}},
		{name: "keeps explicit sort", in: PageRequest{Page: 2, Size: 5, SortBy: "name", SortDir: "DESC"}, want: PageRequest{Page: 2, Size: 5, SortBy: "name", SortDir: "desc"}},
		{name: "negative page", in: PageRequest{Page: -1, Size: 10}, wantErr: true},
		{name: "zero size", in: PageRequest{Page: 0, Size: 0}, wantErr: true},
		{name: "bad direction", in: PageRequest{Page: 0, Size: 10, SortDir: "up"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	items := make([]int, 10)
	first := Page[int]{Items: items, Page: 0, PageSize: 10, TotalCount: 23}
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrev())
	start, end := first.Range()
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(10), end)

	last := Page[int]{Items: items[:3], Page: 2, PageSize: 10, TotalCount: 23}
	assert.False(t, last.HasNext())
	start, end = last.Range()
	assert.Equal(t, int64(21), start)
	assert.Equal(t, int64(23), end)

	start, end = Page[int]{PageSize: 10}.Range()
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestProject_Assignments(t *testing.T) {
	p := Project{Name: "Apollo", Employees: []Employee{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 0}}}
	assert.Equal(t, []int64{1, 3}, p.EmployeeIDs())
	assert.Nil(t, p.Fields().Employees)
	assert.Len(t, p.Employees, 4, "Fields must not mutate the receiver")

	withRefs := Project{Name: "Apollo"}.WithEmployeeIDs([]int64{5, 6})
	assert.Equal(t, []int64{5, 6}, withRefs.EmployeeIDs())
}

func TestAssignmentDiff(t *testing.T) {
	assign, unassign := AssignmentDiff([]int64{1, 2, 3}, []int64{3, 4, 4, 5, 0})
	assert.Equal(t, []int64{4, 5}, assign)
	assert.Equal(t, []int64{1, 2}, unassign)

	assign, unassign = AssignmentDiff(nil, nil)
	assert.Empty(t, assign)
	assert.Empty(t, unassign)
}

func TestProfile_RoleList(t *testing.T) {
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, Profile{Roles: "ROLE_USER, ROLE_ADMIN,"}.RoleList())
	assert.Empty(t, Profile{}.RoleList())
}

func TestRegistration_ConfirmPasswordNeverSent(t *testing.T) {
	data, err := json.Marshal(Registration{Username: "jdoe", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "confirm")
	assert.NotContains(t, string(data), "Confirm")
}
