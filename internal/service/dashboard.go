package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Counter reports a collection's total size.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Employees   Counter
	Departments Counter
	Projects    Counter
}

// Summary holds the dashboard totals.
type Summary struct {
	Employees   int64 `json:"employees"`
	Departments int64 `json:"departments"`
	Projects    int64 `json:"projects"`
}

// DashboardService aggregates collection totals.
type DashboardService struct {
	employees   Counter
	departments Counter
	projects    Counter
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Employees == nil || opts.Departments == nil || opts.Projects == nil {
		panic("service: DashboardServiceOptions requires all counters")
	}
	return &DashboardService{
		employees:   opts.Employees,
		departments: opts.Departments,
		projects:    opts.Projects,
	}
}

// Summary fetches the three totals concurrently. The first failure cancels the rest.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)
	count := func(c Counter, dst *int64) func() error {
		return func() error {
			n, err := c.Count(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}
	g.Go(count(s.employees, &out.Employees))
	g.Go(count(s.departments, &out.Departments))
	g.Go(count(s.projects, &out.Projects))
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("dashboard summary: %w", err)
	}
	return out, nil
}
