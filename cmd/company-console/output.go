package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jmespath-community/go-jmespath"
	"github.com/zeroco/company-console/internal/domain/model"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func (a *app) validateOutput() error {
	switch a.output {
	case outputTable, outputJSON:
	default:
		return usageError{fmt.Errorf("unsupported --output %q (want table or json)", a.output)}
	}
	if a.query != "" {
		if _, err := jmespath.Compile(a.query); err != nil {
			return usageError{fmt.Errorf("invalid --query: %w", err)}
		}
	}
	return nil
}

// table is the tabular rendering of a result.
type table struct {
	header []string
	rows   [][]string
	footer string
}

// render prints data as JSON for --output json, as the JMESPath result for
// --query, and as t otherwise.
func (a *app) render(data any, t table) error {
	if a.query != "" {
		var generic any
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		res, err := jmespath.Search(a.query, generic)
		if err != nil {
			return fmt.Errorf("evaluate --query: %w", err)
		}
		return writeJSON(a.streams.Out, res)
	}
	if a.output == outputJSON {
		return writeJSON(a.streams.Out, data)
	}
	return writeTable(a.streams.Out, t)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.header) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.header, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.footer != "" {
		_, err := fmt.Fprintln(w, t.footer)
		return err
	}
	return nil
}

// pageFooter mirrors a table pager: "1-10 of 23 (page 1 of 3)".
func pageFooter[T any](p model.Page[T]) string {
	start, end := p.Range()
	pages := int64(1)
	if p.PageSize > 0 && p.TotalCount > 0 {
		pages = (p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize)
	}
	return fmt.Sprintf("%d-%d of %d (page %d of %d)", start, end, p.TotalCount, p.Page+1, pages)
}

func fieldRows(pairs ...string) [][]string {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i], dash(pairs[i+1])})
	}
	return rows
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatSalary(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func formatIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, formatID(id))
	}
	return strings.Join(parts, ",")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{fmt.Errorf("invalid id %q", arg)}
	}
	return id, nil
}
