package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeroco/company-console/internal/apiclient"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, Employees, Resolve("/employees"))
	assert.Equal(t, Employees, Resolve("employees/"))
	assert.Equal(t, Home, Resolve(""))
	assert.Equal(t, NotFound, Resolve("/payroll"))
}

func TestGuard(t *testing.T) {
	for _, r := range []Route{Dashboard, Employees, Departments, Projects, Profile} {
		assert.Equal(t, Decision{Redirect: Login}, Guard(r, false), r)
		assert.Equal(t, Decision{Allowed: true}, Guard(r, true), r)
	}
	for _, r := range []Route{Home, Login, Register, NotFound} {
		assert.True(t, Guard(r, false).Allowed, r)
		assert.True(t, Guard(r, true).Allowed, r)
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, "/", tr.Current())

	d := tr.Navigate(Projects, false)
	assert.False(t, d.Allowed)
	assert.Equal(t, apiclient.LoginPath, tr.Current())

	tr.Navigate(Projects, true)
	assert.Equal(t, "/projects", tr.Current())

	var loc apiclient.LocationFunc = tr.Current
	assert.Equal(t, "/projects", loc())
}
