package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/bootstrap"
	"github.com/zeroco/company-console/internal/crud"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/navigation"
)

// form binds entity fields to flags and copies the flags that were set onto an entity.
type form[T model.Entity] interface {
	bind(cmd *cobra.Command)
	apply(cmd *cobra.Command, base T) (T, error)
}

type getter[T model.Entity] interface {
	GetByID(ctx context.Context, id int64) (T, error)
}

// resourceCommand describes one managed collection. Its list, create,
// update, and delete subcommands drive a crud.Controller.
type resourceCommand[T model.Entity] struct {
	use        string
	labels     crud.Labels
	route      navigation.Route
	controller func(c *bootstrap.Console, pageSize int) *crud.Controller[T]
	fetcher    func(c *bootstrap.Console) getter[T]
	newForm    func() form[T]
	header     []string
	row        func(T) []string
	detail     func(T) [][]string
}

type listResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}

func (r resourceCommand[T]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.use,
		Short: "Manage " + r.labels.Plural,
	}
	cmd.AddCommand(r.listCmd(a), r.getCmd(a), r.createCmd(a), r.updateCmd(a), r.deleteCmd(a))
	return cmd
}

func (r resourceCommand[T]) listCmd(a *app) *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + r.labels.Plural + " one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return usageError{errors.New("--page must be >= 1")}
			}
			if size < 0 {
				return usageError{errors.New("--size must be >= 0")}
			}
			if !a.enter(r.route) {
				return nil
			}
			ctrl := r.controller(a.console, size)
			if err := ctrl.ChangePage(cmd.Context(), page-1); err != nil {
				return nil
			}

			s := ctrl.Snapshot()
			p := model.Page[T]{Items: s.Items, Page: s.Page, PageSize: s.PageSize, TotalCount: s.TotalCount}
			rows := make([][]string, 0, len(s.Items))
			for _, item := range s.Items {
				rows = append(rows, r.row(item))
			}
			return a.render(
				listResult[T]{Items: s.Items, Page: s.Page + 1, PageSize: s.PageSize, TotalCount: s.TotalCount},
				table{header: r.header, rows: rows, footer: pageFooter(p)},
			)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", 0, "Rows per page (default from PAGE_SIZE)")
	return cmd
}

func (r resourceCommand[T]) getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + strings.ToLower(r.labels.Noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.enter(r.route) {
				return nil
			}
			item, err := r.fetcher(a.console).GetByID(cmd.Context(), id)
			if err != nil {
				a.fail(err, r.labels.FetchOneFailed())
				return nil
			}
			return a.render(item, table{header: []string{"FIELD", "VALUE"}, rows: r.detail(item)})
		},
	}
}

func (r resourceCommand[T]) createCmd(a *app) *cobra.Command {
	f := r.newForm()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + strings.ToLower(r.labels.Noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var zero T
			item, err := f.apply(cmd, zero)
			if err != nil {
				return err
			}
			if !a.enter(r.route) {
				return nil
			}
			ctrl := r.controller(a.console, 0)
			if err := ctrl.OpenCreate(); err != nil {
				return err
			}
			// Failures are reported on the notification channel.
			_ = ctrl.Submit(cmd.Context(), item)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (r resourceCommand[T]) updateCmd(a *app) *cobra.Command {
	f := r.newForm()
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + strings.ToLower(r.labels.Noun) + "; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.enter(r.route) {
				return nil
			}
			current, err := r.fetcher(a.console).GetByID(cmd.Context(), id)
			if err != nil {
				a.fail(err, r.labels.FetchOneFailed())
				return nil
			}
			item, err := f.apply(cmd, current)
			if err != nil {
				return err
			}
			ctrl := r.controller(a.console, 0)
			if err := ctrl.OpenEdit(current); err != nil {
				return err
			}
			_ = ctrl.Submit(cmd.Context(), item)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (r resourceCommand[T]) deleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + strings.ToLower(r.labels.Noun) + " after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.enter(r.route) {
				return nil
			}
			ctrl := r.controller(a.console, 0)
			if err := ctrl.RequestDelete(id); err != nil {
				return err
			}
			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Delete %s %d?", strings.ToLower(r.labels.Noun), id))
				if err != nil {
					ctrl.CancelDelete()
					return err
				}
				if !ok {
					ctrl.CancelDelete()
					a.console.Notifications.Info("Delete cancelled.")
					return nil
				}
			}
			_ = ctrl.ConfirmDelete(cmd.Context())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// optional maps an empty flag value to nil.
func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func dateFlag(cmd *cobra.Command, name, value string, dst *model.Date) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return usageError{fmt.Errorf("invalid --%s: %w", name, err)}
	}
	*dst = d
	return nil
}
