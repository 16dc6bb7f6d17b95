// Package navigation defines the console's routes, the guard that keeps
// anonymous users out of protected views, and the current-location tracker.
package navigation

import (
	"strings"
	"sync"
)

// Route is a view path.
type Route string

const (
	Home        Route = "/"
	Login       Route = "/login"
	Register    Route = "/register"
	Dashboard   Route = "/dashboard"
	Employees   Route = "/employees"
	Departments Route = "/departments"
	Projects    Route = "/projects"
	Profile     Route = "/profile"
	NotFound    Route = "/404"
)

var known = map[Route]bool{
	Home:        false,
	Login:       false,
	Register:    false,
	Dashboard:   true,
	Employees:   true,
	Departments: true,
	Projects:    true,
	Profile:     true,
}

// Resolve maps a path to a known route, or NotFound.
func Resolve(path string) Route {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	if _, ok := known[Route(p)]; ok {
		return Route(p)
	}
	return NotFound
}

// Protected reports whether r requires a signed-in user.
func (r Route) Protected() bool { return known[r] }

// Decision is the result of guarding a navigation.
type Decision struct {
	Allowed  bool
	Redirect Route
}

// Guard decides whether a user may open route. Anonymous users are sent to the
// login view from protected routes; public routes are always allowed.
func Guard(route Route, authenticated bool) Decision {
	if route.Protected() && !authenticated {
		return Decision{Redirect: Login}
	}
	return Decision{Allowed: true}
}

// Tracker holds the current location. Its Current method satisfies apiclient.LocationFunc.
type Tracker struct {
	mu      sync.RWMutex
	current Route
}

// NewTracker starts at Home.
func NewTracker() *Tracker { return &Tracker{current: Home} }

// Current returns the current location as a path.
func (t *Tracker) Current() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return string(t.current)
}

// Set records a new location.
func (t *Tracker) Set(r Route) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = r
}

// Navigate applies Guard and moves to the resulting location. It returns the decision.
func (t *Tracker) Navigate(route Route, authenticated bool) Decision {
	d := Guard(route, authenticated)
	if d.Allowed {
		t.Set(route)
	} else {
		t.Set(d.Redirect)
	}
	return d
}
