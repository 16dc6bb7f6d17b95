package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
)

// API is the part of *apiclient.Client the resource clients depend on.
type API interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...apiclient.RequestOption) error
}

// ResourceOptions groups dependencies for Resource.
type ResourceOptions struct {
	API    API          // Required
	Path   string       // Required: collection path, e.g. "/employees"
	Logger *slog.Logger // Optional
}

// Resource is a typed CRUD client for one backend collection.
type Resource[T model.Entity] struct {
	api    API
	path   string
	name   string
	logger *slog.Logger
}

// listEnvelope is the backend's page shape. Only content and totalElements are consumed.
type listEnvelope[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
}

// NewResource constructs a Resource. It panics when API or Path is missing.
func NewResource[T model.Entity](opts ResourceOptions) *Resource[T] {
	if opts.API == nil {
		panic("service: ResourceOptions.API is required")
	}
	path := "/" + strings.Trim(opts.Path, "/")
	if path == "/" {
		panic("service: ResourceOptions.Path is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := strings.TrimPrefix(path, "/")
	return &Resource[T]{
		api:    opts.API,
		path:   path,
		name:   name,
		logger: logger.With("resource", name),
	}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// List fetches one page. The request is validated before any network call.
func (r *Resource[T]) List(ctx context.Context, req model.PageRequest) (model.Page[T], error) {
	norm, err := req.Normalize()
	if err != nil {
		return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(norm.Page))
	q.Set("size", strconv.Itoa(norm.Size))
	q.Set("sortBy", norm.SortBy)
	q.Set("sortDir", norm.SortDir)

	var env listEnvelope[T]
	if err := r.api.Do(ctx, http.MethodGet, r.path, nil, &env, apiclient.WithQuery(q)); err != nil {
		return model.Page[T]{}, fmt.Errorf("list %s: %w", r.name, err)
	}
	items := env.Content
	if items == nil {
		items = []T{}
	}
	r.logger.DebugContext(ctx, "page loaded", "page", norm.Page, "size", norm.Size, "total", env.TotalElements)
	return model.Page[T]{
		Items:      items,
		Page:       norm.Page,
		PageSize:   norm.Size,
		TotalCount: env.TotalElements,
	}, nil
}

// Count returns the collection's total using a single-item page.
func (r *Resource[T]) Count(ctx context.Context) (int64, error) {
	page, err := r.List(ctx, model.PageRequest{Page: 0, Size: 1})
	if err != nil {
		return 0, err
	}
	return page.TotalCount, nil
}

// GetByID fetches one entity.
func (r *Resource[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var out T
	if err := r.api.Do(ctx, http.MethodGet, r.itemPath(id), nil, &out); err != nil {
		return out, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return out, nil
}

// Create posts a new entity and returns the stored record.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out T
	if err := r.api.Do(ctx, http.MethodPost, r.path, item, &out); err != nil {
		return out, fmt.Errorf("create %s: %w", r.name, err)
	}
	r.logger.InfoContext(ctx, "entity created", "id", out.GetID())
	return out, nil
}

// Update replaces the entity with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	var out T
	if err := r.api.Do(ctx, http.MethodPut, r.itemPath(id), item, &out); err != nil {
		return out, fmt.Errorf("update %s %d: %w", r.name, id, err)
	}
	r.logger.InfoContext(ctx, "entity updated", "id", id)
	return out, nil
}

// Delete removes the entity with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.api.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", r.name, id, err)
	}
	r.logger.InfoContext(ctx, "entity deleted", "id", id)
	return nil
}
