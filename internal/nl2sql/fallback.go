package nl2sql

import (
	"fmt"
	"regexp"
	"strings"
)

const DefaultSQL = "SELECT * FROM employees;"

var numberPattern = regexp.MustCompile(`\d+`)

type fallbackRule struct {
	name  string
	match func(lower string) bool
	build func(original string) string
}

func constant(sql string) func(string) string {
	return func(string) string { return sql }
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Evaluated in order, first match wins. Ordering is load-bearing:
// "javascript" must be checked before "java" since one contains the other.
var fallbackRules = []fallbackRule{
	{
		name: "show_all",
		match: func(q string) bool {
			if !strings.Contains(q, "all employees") && !strings.Contains(q, "show all") {
				return false
			}
			return !containsAny(q, "sql", "python", "java", "aws", "javascript")
		},
		build: constant(DefaultSQL),
	},
	{
		name: "sql_skills",
		match: func(q string) bool {
			return strings.Contains(q, "sql") && containsAny(q, "skills", "skill", "know", "with")
		},
		build: constant("SELECT * FROM employees WHERE skills ILIKE '%SQL%';"),
	},
	{
		name: "javascript",
		match: func(q string) bool {
			return strings.Contains(q, "javascript")
		},
		build: constant("SELECT * FROM employees WHERE skills ILIKE '%JavaScript%';"),
	},
	{
		name: "java",
		match: func(q string) bool {
			return strings.Contains(q, "java") && !strings.Contains(q, "javascript")
		},
		// Approximates a word boundary on the comma-joined skills string so
		// Java never matches JavaScript.
		build: constant("SELECT * FROM employees WHERE (skills ILIKE '%Java,%' OR skills ILIKE '%Java %' OR skills LIKE '%Java' OR skills LIKE 'Java%');"),
	},
	{
		name: "python_experience",
		match: func(q string) bool {
			return strings.Contains(q, "python") && containsAny(q, "experience", "years")
		},
		build: func(original string) string {
			if years := numberPattern.FindString(original); years != "" {
				return fmt.Sprintf("SELECT * FROM employees WHERE skills ILIKE '%%Python%%' AND experience_years > %s;", years)
			}
			return "SELECT * FROM employees WHERE skills ILIKE '%Python%';"
		},
	},
	{
		name: "more_than_years",
		match: func(q string) bool {
			return strings.Contains(q, "more than") && strings.Contains(q, "years") && numberPattern.MatchString(q)
		},
		build: func(original string) string {
			return fmt.Sprintf("SELECT * FROM employees WHERE experience_years > %s;", numberPattern.FindString(original))
		},
	},
	{
		name: "python",
		match: func(q string) bool {
			return strings.Contains(q, "python")
		},
		build: constant("SELECT * FROM employees WHERE skills ILIKE '%Python%';"),
	},
	{
		name: "sql",
		match: func(q string) bool {
			return strings.Contains(q, "sql")
		},
		build: constant("SELECT * FROM employees WHERE skills ILIKE '%SQL%';"),
	},
	{
		name: "aws",
		match: func(q string) bool {
			return strings.Contains(q, "aws")
		},
		build: constant("SELECT * FROM employees WHERE skills ILIKE '%AWS%';"),
	},
}

// FallbackSQL maps a natural-language query to SQL with deterministic pattern
// matching. Total: every input resolves to some valid SELECT against the
// employees table, with SELECT * as the final default.
func FallbackSQL(query string) string {
	lower := strings.ToLower(query)
	for _, rule := range fallbackRules {
		if rule.match(lower) {
			return rule.build(query)
		}
	}
	return DefaultSQL
}
