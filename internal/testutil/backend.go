package testutil

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zeroco/company-console/internal/domain/model"
)

// BackendUser is an account known to the fake backend.
type BackendUser struct {
	Profile  model.Profile
	Password string
}

// RecordedRequest captures what the fake backend received.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          string
}

type injectedFailure struct {
	method string
	prefix string
	status int
	body   string
}

// Backend is an in-memory stand-in for the company REST API mounted under /api.
// It implements the auth, user, employee, department, and project endpoints.
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	nextID      int64
	users       map[string]*BackendUser
	tokens      map[string]string
	employees   map[int64]model.Employee
	departments map[int64]model.Department
	projects    map[int64]model.Project
	assignments map[int64][]int64
	requests    []RecordedRequest
	failures    []injectedFailure
}

// TestingTB is the subset of testing.TB that NewBackend requires.
type TestingTB interface {
	Helper()
}

// NewBackend starts a fake backend. The server is closed via t.Cleanup when available.
func NewBackend(t TestingTB) *Backend {
	t.Helper()
	b := &Backend{
		nextID:      1,
		users:       make(map[string]*BackendUser),
		tokens:      make(map[string]string),
		employees:   make(map[int64]model.Employee),
		departments: make(map[int64]model.Department),
		projects:    make(map[int64]model.Project),
		assignments: make(map[int64][]int64),
	}
	b.Server = httptest.NewServer(b.routes())
	if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
		tc.Cleanup(b.Server.Close)
	}
	return b
}

// BaseURL returns the API base address, including the /api path.
func (b *Backend) BaseURL() string { return b.Server.URL + "/api" }

// AddUser registers an account and returns it.
func (b *Backend) AddUser(username, password string, roles ...string) *BackendUser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(roles) == 0 {
		roles = []string{"ROLE_USER"}
	}
	u := &BackendUser{
		Profile: model.Profile{
			ID:        b.allocID(),
			Username:  username,
			Email:     username + "@example.com",
			FirstName: strings.ToUpper(username[:1]) + username[1:],
			LastName:  "Tester",
			Roles:     strings.Join(roles, ","),
		},
		Password: password,
	}
	b.users[username] = u
	return u
}

// IssueToken returns a valid bearer token for an existing user.
func (b *Backend) IssueToken(username string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueToken(username)
}

// RevokeTokens invalidates every issued token so subsequent calls get 401.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]string)
}

// SeedEmployees stores n generated employees and returns them in id order.
func (b *Backend) SeedEmployees(n int) []model.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Employee, 0, n)
	for i := 1; i <= n; i++ {
		e := model.Employee{
			ID:        b.allocID(),
			FirstName: fmt.Sprintf("First%02d", i),
			LastName:  fmt.Sprintf("Last%02d", i),
			Email:     fmt.Sprintf("employee%02d@example.com", i),
			HireDate:  model.NewDate(2023, time.January, i%28+1),
			JobTitle:  "Engineer",
		}
		b.employees[e.ID] = e
		out = append(out, e)
	}
	return out
}

// SeedDepartment stores a department.
func (b *Backend) SeedDepartment(name string) model.Department {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := model.Department{ID: b.allocID(), Name: name}
	b.departments[d.ID] = d
	return d
}

// SeedProject stores a project with the given assigned employees.
func (b *Backend) SeedProject(name string, employeeIDs ...int64) model.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := model.Project{ID: b.allocID(), Name: name}
	b.projects[p.ID] = p
	b.assignments[p.ID] = sortedIDs(employeeIDs)
	return b.projectView(p.ID)
}

// Employee returns a stored employee.
func (b *Backend) Employee(id int64) (model.Employee, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.employees[id]
	return e, ok
}

// Department returns a stored department.
func (b *Backend) Department(id int64) (model.Department, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.departments[id]
	return d, ok
}

// Project returns a stored project with its assignments expanded.
func (b *Backend) Project(id int64) (model.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.projects[id]; !ok {
		return model.Project{}, false
	}
	return b.projectView(id), true
}

// Password returns the stored password of a user.
func (b *Backend) Password(username string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u, ok := b.users[username]; ok {
		return u.Password
	}
	return ""
}

// FailNext makes the next request whose method matches and whose path (below /api)
// starts with prefix answer with status and body. An empty method matches any method.
func (b *Backend) FailNext(method, prefix string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, injectedFailure{method: method, prefix: prefix, status: status, body: body})
}

// Requests returns a copy of every request received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// CountRequests counts received requests with the given method and exact path below /api.
func (b *Backend) CountRequests(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests forgets recorded requests.
func (b *Backend) ResetRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

// FakeJWT builds an unsigned JWT-shaped token carrying sub, roles, iat and exp claims.
func FakeJWT(subject string, roles []string, issuedAt, expiresAt time.Time) string {
	return encodeJWT(map[string]any{
		"sub":   subject,
		"roles": strings.Join(roles, ","),
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	})
}

func encodeJWT(claims map[string]any) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, _ := json.Marshal(claims)
	payload := base64.RawURLEncoding.EncodeToString(body)
	sig := base64.RawURLEncoding.EncodeToString([]byte("not-a-real-signature"))
	return header + "." + payload + "." + sig
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/auth/register", b.handleRegister)
	mux.HandleFunc("GET /api/users/me", b.authed(b.handleProfile))
	mux.HandleFunc("POST /api/users/me/change-password", b.authed(b.handleChangePassword))

	mux.HandleFunc("GET /api/employees", b.authed(b.listEmployees))
	mux.HandleFunc("POST /api/employees", b.admin(b.createEmployee))
	mux.HandleFunc("GET /api/employees/{id}", b.authed(b.getEmployee))
	mux.HandleFunc("PUT /api/employees/{id}", b.admin(b.updateEmployee))
	mux.HandleFunc("DELETE /api/employees/{id}", b.admin(b.deleteEmployee))

	mux.HandleFunc("GET /api/departments", b.authed(b.listDepartments))
	mux.HandleFunc("POST /api/departments", b.admin(b.createDepartment))
	mux.HandleFunc("GET /api/departments/{id}", b.authed(b.getDepartment))
	mux.HandleFunc("PUT /api/departments/{id}", b.admin(b.updateDepartment))
	mux.HandleFunc("DELETE /api/departments/{id}", b.admin(b.deleteDepartment))

	mux.HandleFunc("GET /api/projects", b.authed(b.listProjects))
	mux.HandleFunc("POST /api/projects", b.admin(b.createProject))
	mux.HandleFunc("GET /api/projects/{id}", b.authed(b.getProject))
	mux.HandleFunc("PUT /api/projects/{id}", b.admin(b.updateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", b.admin(b.deleteProject))
	mux.HandleFunc("POST /api/projects/{id}/employees/{employeeID}", b.admin(b.assignEmployee))
	mux.HandleFunc("DELETE /api/projects/{id}/employees/{employeeID}", b.admin(b.unassignEmployee))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.record(r) {
			return
		}
		if f, ok := b.takeFailure(r); ok {
			writeRaw(w, f.status, f.body)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// record stores the request. It reports true when the body could not be read.
func (b *Backend) record(r *http.Request) bool {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return true
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        r.Method,
		Path:          strings.TrimPrefix(r.URL.Path, "/api"),
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
		Body:          string(body),
	})
	return false
}

func (b *Backend) takeFailure(r *http.Request) (injectedFailure, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	path := strings.TrimPrefix(r.URL.Path, "/api")
	for i, f := range b.failures {
		if (f.method == "" || f.method == r.Method) && strings.HasPrefix(path, f.prefix) {
			b.failures = slices.Delete(b.failures, i, i+1)
			return f, true
		}
	}
	return injectedFailure{}, false
}

func (b *Backend) currentUser(r *http.Request) (*BackendUser, bool) {
	raw := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	username, ok := b.tokens[token]
	if !ok {
		return nil, false
	}
	u, ok := b.users[username]
	return u, ok
}

func (b *Backend) authed(next func(http.ResponseWriter, *http.Request, *BackendUser)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := b.currentUser(r)
		if !ok {
			writeRaw(w, http.StatusUnauthorized, "")
			return
		}
		next(w, r, u)
	}
}

func (b *Backend) admin(next func(http.ResponseWriter, *http.Request, *BackendUser)) http.HandlerFunc {
	return b.authed(func(w http.ResponseWriter, r *http.Request, u *BackendUser) {
		if !slices.Contains(u.Profile.RoleList(), "ROLE_ADMIN") {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access Denied"})
			return
		}
		next(w, r, u)
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[creds.Username]
	if !ok || u.Password != creds.Password {
		writeRaw(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, model.AuthResponse{JWT: b.issueToken(creds.Username)})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return
	}
	if errs := requiredFields(map[string]string{
		"username": in.Username, "email": in.Email, "password": in.Password,
	}); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[in.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists: " + in.Username})
		return
	}
	for _, u := range b.users {
		if strings.EqualFold(u.Profile.Email, in.Email) {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already exists: " + in.Email})
			return
		}
	}
	u := &BackendUser{
		Profile: model.Profile{
			ID:        b.allocID(),
			Username:  in.Username,
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Roles:     "ROLE_USER",
		},
		Password: in.Password,
	}
	b.users[in.Username] = u
	writeJSON(w, http.StatusCreated, u.Profile)
}

func (b *Backend) handleProfile(w http.ResponseWriter, _ *http.Request, u *BackendUser) {
	writeJSON(w, http.StatusOK, u.Profile)
}

func (b *Backend) handleChangePassword(w http.ResponseWriter, r *http.Request, u *BackendUser) {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.Password != in.CurrentPassword {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Current password is incorrect."})
		return
	}
	u.Password = in.NewPassword
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Password updated successfully."})
}

func (b *Backend) listEmployees(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	b.mu.Lock()
	items := mapValues(b.employees)
	b.mu.Unlock()
	writePage(w, r, items)
}

func (b *Backend) getEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	e, found := b.employees[id]
	b.mu.Unlock()
	if !found {
		notFound(w, "Employee", id)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (b *Backend) createEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	var e model.Employee
	if !decodeEmployee(w, r, &e) {
		return
	}
	b.mu.Lock()
	e.ID = b.allocID()
	b.employees[e.ID] = e
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) updateEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var e model.Employee
	if !decodeEmployee(w, r, &e) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.employees[id]; !found {
		notFound(w, "Employee", id)
		return
	}
	e.ID = id
	b.employees[id] = e
	writeJSON(w, http.StatusOK, e)
}

func (b *Backend) deleteEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.employees[id]; !found {
		notFound(w, "Employee", id)
		return
	}
	for pid, ids := range b.assignments {
		b.assignments[pid] = slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	}
	delete(b.employees, id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listDepartments(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	b.mu.Lock()
	items := mapValues(b.departments)
	b.mu.Unlock()
	writePage(w, r, items)
}

func (b *Backend) getDepartment(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	d, found := b.departments[id]
	b.mu.Unlock()
	if !found {
		notFound(w, "Department", id)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (b *Backend) createDepartment(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	var d model.Department
	if !decodeNamed(w, r, &d, func() string { return d.Name }) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.departments {
		if strings.EqualFold(existing.Name, d.Name) {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Department with name '" + d.Name + "' already exists."})
			return
		}
	}
	d.ID = b.allocID()
	b.departments[d.ID] = d
	writeJSON(w, http.StatusCreated, d)
}

func (b *Backend) updateDepartment(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var d model.Department
	if !decodeNamed(w, r, &d, func() string { return d.Name }) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.departments[id]; !found {
		notFound(w, "Department", id)
		return
	}
	d.ID = id
	b.departments[id] = d
	writeJSON(w, http.StatusOK, d)
}

func (b *Backend) deleteDepartment(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.departments[id]; !found {
		notFound(w, "Department", id)
		return
	}
	delete(b.departments, id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listProjects(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	b.mu.Lock()
	items := make([]model.Project, 0, len(b.projects))
	for id := range b.projects {
		items = append(items, b.projectView(id))
	}
	b.mu.Unlock()
	writePage(w, r, items)
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[id]; !found {
		notFound(w, "Project", id)
		return
	}
	writeJSON(w, http.StatusOK, b.projectView(id))
}

// createProject ignores any employees in the body; assignment uses the relationship endpoints.
func (b *Backend) createProject(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	var p model.Project
	if !decodeNamed(w, r, &p, func() string { return p.Name }) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.allocID()
	p.Employees = nil
	b.projects[p.ID] = p
	writeJSON(w, http.StatusCreated, b.projectView(p.ID))
}

func (b *Backend) updateProject(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p model.Project
	if !decodeNamed(w, r, &p, func() string { return p.Name }) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[id]; !found {
		notFound(w, "Project", id)
		return
	}
	p.ID = id
	p.Employees = nil
	b.projects[id] = p
	writeJSON(w, http.StatusOK, b.projectView(id))
}

func (b *Backend) deleteProject(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[id]; !found {
		notFound(w, "Project", id)
		return
	}
	delete(b.projects, id)
	delete(b.assignments, id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) assignEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	b.mutateAssignment(w, r, func(ids []int64, employeeID int64) ([]int64, bool) {
		return sortedIDs(append(ids, employeeID)), true
	})
}

func (b *Backend) unassignEmployee(w http.ResponseWriter, r *http.Request, _ *BackendUser) {
	b.mutateAssignment(w, r, func(ids []int64, employeeID int64) ([]int64, bool) {
		if !slices.Contains(ids, employeeID) {
			return ids, false
		}
		return slices.DeleteFunc(ids, func(v int64) bool { return v == employeeID }), true
	})
}

func (b *Backend) mutateAssignment(w http.ResponseWriter, r *http.Request, apply func([]int64, int64) ([]int64, bool)) {
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[projectID]; !found {
		notFound(w, "Project", projectID)
		return
	}
	if _, found := b.employees[employeeID]; !found {
		notFound(w, "Employee", employeeID)
		return
	}
	ids, changed := apply(slices.Clone(b.assignments[projectID]), employeeID)
	if !changed {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": fmt.Sprintf("Employee %d is not assigned to project %d", employeeID, projectID),
		})
		return
	}
	b.assignments[projectID] = ids
	writeJSON(w, http.StatusOK, b.projectView(projectID))
}

// projectView expands assignments. Callers hold b.mu.
func (b *Backend) projectView(id int64) model.Project {
	p := b.projects[id]
	p.Employees = nil
	for _, eid := range b.assignments[id] {
		if e, ok := b.employees[eid]; ok {
			p.Employees = append(p.Employees, e)
		}
	}
	return p
}

// issueToken mints a token for username. Callers hold b.mu.
func (b *Backend) issueToken(username string) string {
	roles := []string{"ROLE_USER"}
	if u, ok := b.users[username]; ok {
		roles = u.Profile.RoleList()
	}
	now := time.Now()
	token := encodeJWT(map[string]any{
		"sub":   username,
		"roles": strings.Join(roles, ","),
		"iat":   now.Unix(),
		"exp":   now.Add(10 * time.Hour).Unix(),
		"jti":   strconv.FormatInt(b.allocID(), 10),
	})
	b.tokens[token] = username
	return token
}

// allocID returns the next identifier. Callers hold b.mu.
func (b *Backend) allocID() int64 {
	id := b.nextID
	b.nextID++
	return id
}

type pageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func writePage[T model.Entity](w http.ResponseWriter, r *http.Request, items []T) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = 20
	}
	slices.SortFunc(items, func(a, b T) int {
		return int(a.GetID() - b.GetID())
	})
	if strings.EqualFold(q.Get("sortDir"), "desc") {
		slices.Reverse(items)
	}
	total := len(items)
	start := min(page*size, total)
	end := min(start+size, total)
	writeJSON(w, http.StatusOK, pageEnvelope[T]{
		Content:       items[start:end],
		TotalElements: int64(total),
		TotalPages:    (total + size - 1) / size,
		Number:        page,
		Size:          size,
	})
}

func decodeEmployee(w http.ResponseWriter, r *http.Request, e *model.Employee) bool {
	if err := json.NewDecoder(r.Body).Decode(e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return false
	}
	errs := requiredFields(map[string]string{
		"firstName": e.FirstName, "lastName": e.LastName, "email": e.Email, "jobTitle": e.JobTitle,
	})
	if e.HireDate.IsZero() {
		errs["hireDate"] = "must not be null"
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return false
	}
	return true
}

func decodeNamed(w http.ResponseWriter, r *http.Request, dst any, name func() string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return false
	}
	if errs := requiredFields(map[string]string{"name": name()}); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return false
	}
	return true
}

func requiredFields(fields map[string]string) map[string]string {
	errs := make(map[string]string)
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			errs[name] = "must not be blank"
		}
	}
	return errs
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid id: " + r.PathValue(name)})
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter, kind string, id int64) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found with id: %d", kind, id)})
}

func mapValues[T any](m map[int64]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func sortedIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	if body != "" {
		if json.Valid([]byte(body)) {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
