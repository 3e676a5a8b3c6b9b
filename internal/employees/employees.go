package employees

import "errors"

var ErrEmptySQL = errors.New("sql statement is required")

// Employee mirrors the employees table. Skills is a flat comma-joined string
// ("Python, SQL"), matched by substring patterns rather than relationally.
type Employee struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ExperienceYears int    `json:"experience_years"`
	Skills          string `json:"skills"`
}

// QueryResult carries the executed SQL, ordered column names, one
// column-name→value map per row, and the row count.
type QueryResult struct {
	SQL     string           `json:"sql"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Count   int              `json:"count"`
}
