package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/staffinder/staffinder/internal/employees"
)

// Repository is the executor: validated SELECT statements in, rows out.
// It does not inspect or rewrite the SQL it is handed.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping employees db: %w", err)
	}
	return nil
}

// ExecuteSelect runs sqlText against the employees table and returns every row
// as a column-name→value map in result-set order.
func (r *Repository) ExecuteSelect(ctx context.Context, sqlText string) (employees.QueryResult, error) {
	if strings.TrimSpace(sqlText) == "" {
		return employees.QueryResult{}, employees.ErrEmptySQL
	}

	rows, err := r.db.QueryContext(ctx, sqlText)
	if err != nil {
		return employees.QueryResult{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return employees.QueryResult{}, fmt.Errorf("read result columns: %w", err)
	}

	result := employees.QueryResult{
		SQL:     sqlText,
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return employees.QueryResult{}, fmt.Errorf("scan result row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return employees.QueryResult{}, fmt.Errorf("iterate result rows: %w", err)
	}

	result.Count = len(result.Rows)
	return result, nil
}

// Sample returns up to limit rows, backing the database connectivity probe.
func (r *Repository) Sample(ctx context.Context, limit int) (employees.QueryResult, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.ExecuteSelect(ctx, "SELECT * FROM employees LIMIT "+strconv.Itoa(limit)+";")
}

// Drivers hand back []byte for text columns; keep JSON output readable.
func normalizeValue(value any) any {
	if raw, ok := value.([]byte); ok {
		return string(raw)
	}
	return value
}
