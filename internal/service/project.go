package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zeroco/company-console/internal/domain/model"
)

const ProjectsPath = "/projects"

// ProjectService is the CRUD client for /projects plus the assignment endpoints.
// Project bodies never carry assignments; a non-nil Employees slice on Create or
// Update is applied afterwards through SyncEmployees.
type ProjectService struct {
	*Resource[model.Project]
	api    API
	logger *slog.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(api API, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{
		Resource: NewResource[model.Project](ResourceOptions{API: api, Path: ProjectsPath, Logger: logger}),
		api:      api,
		logger:   logger.With("resource", "projects"),
	}
}

func assignmentPath(projectID, employeeID int64) string {
	return ProjectsPath + "/" + strconv.FormatInt(projectID, 10) +
		"/employees/" + strconv.FormatInt(employeeID, 10)
}

// Create stores the project fields, then assigns p.Employees when set. When the
// project was stored but the assignments failed, the error is a
// *model.IncompleteSaveError[model.Project] carrying the stored project.
func (s *ProjectService) Create(ctx context.Context, p model.Project) (model.Project, error) {
	created, err := s.Resource.Create(ctx, p.Fields())
	if err != nil {
		return created, err
	}
	if p.Employees == nil {
		return created, nil
	}
	return s.syncAfterSave(ctx, created, p.EmployeeIDs())
}

// Update stores the project fields, then syncs p.Employees when set. A failed
// sync is reported like Create.
func (s *ProjectService) Update(ctx context.Context, id int64, p model.Project) (model.Project, error) {
	updated, err := s.Resource.Update(ctx, id, p.Fields())
	if err != nil {
		return updated, err
	}
	if p.Employees == nil {
		return updated, nil
	}
	if updated.ID == 0 {
		updated.ID = id
	}
	return s.syncAfterSave(ctx, updated, p.EmployeeIDs())
}

func (s *ProjectService) syncAfterSave(ctx context.Context, saved model.Project, desired []int64) (model.Project, error) {
	synced, err := s.SyncEmployees(ctx, saved.ID, desired)
	if err == nil {
		return synced, nil
	}
	if saved.ID == 0 {
		return saved, err
	}
	s.logger.WarnContext(ctx, "project saved without its assignments", "project_id", saved.ID, "error", err)
	return saved, &model.IncompleteSaveError[model.Project]{Saved: saved, Err: err}
}

// AssignEmployee adds an employee to a project and returns the updated project.
func (s *ProjectService) AssignEmployee(ctx context.Context, projectID, employeeID int64) (model.Project, error) {
	var out model.Project
	if err := s.api.Do(ctx, http.MethodPost, assignmentPath(projectID, employeeID), nil, &out); err != nil {
		return out, fmt.Errorf("assign employee %d to project %d: %w", employeeID, projectID, err)
	}
	return out, nil
}

// UnassignEmployee removes an employee from a project and returns the updated project.
func (s *ProjectService) UnassignEmployee(ctx context.Context, projectID, employeeID int64) (model.Project, error) {
	var out model.Project
	if err := s.api.Do(ctx, http.MethodDelete, assignmentPath(projectID, employeeID), nil, &out); err != nil {
		return out, fmt.Errorf("unassign employee %d from project %d: %w", employeeID, projectID, err)
	}
	return out, nil
}

// SyncEmployees makes the project's assignments equal desired. Assignments are
// applied before removals and stop at the first failure.
func (s *ProjectService) SyncEmployees(ctx context.Context, projectID int64, desired []int64) (model.Project, error) {
	current, err := s.GetByID(ctx, projectID)
	if err != nil {
		return current, fmt.Errorf("sync employees: %w", err)
	}

	assign, unassign := model.AssignmentDiff(current.EmployeeIDs(), desired)
	result := current
	for _, id := range assign {
		if result, err = s.AssignEmployee(ctx, projectID, id); err != nil {
			return current, fmt.Errorf("sync employees: %w", err)
		}
	}
	for _, id := range unassign {
		if result, err = s.UnassignEmployee(ctx, projectID, id); err != nil {
			return current, fmt.Errorf("sync employees: %w", err)
		}
	}
	if len(assign)+len(unassign) > 0 {
		s.logger.InfoContext(ctx, "project assignments synced",
			"project_id", projectID,
			"assigned", len(assign),
			"unassigned", len(unassign),
		)
	}
	return result, nil
}
