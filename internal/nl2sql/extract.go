package nl2sql

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoSQLFound signals that the response text held no usable SELECT statement.
var ErrNoSQLFound = errors.New("no SQL statement found in response")

var (
	fenceOpenPattern  = regexp.MustCompile("(?i)```sql\\s*")
	fenceClosePattern = regexp.MustCompile("```\\s*")
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Ordered most specific first: a complete statement against the employees
// table beats a bare SELECT *, which beats any semicolon-terminated SELECT,
// which beats a lone SELECT line. The first candidate that validates wins.
var extractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(SELECT\s+[^;]*FROM\s+employees[^;]*);?`),
	regexp.MustCompile(`(?is)(SELECT\s+\*\s+FROM\s+employees(?:\s+WHERE[^;]*)?);?`),
	regexp.MustCompile(`(?is)(SELECT[^;]+;)`),
	regexp.MustCompile(`(?i)(SELECT[^\n]*)`),
}

// ExtractSQL isolates a single clean SQL statement from free-form model text.
// The result always starts with SELECT, references FROM employees, and ends
// with exactly one semicolon.
func ExtractSQL(text string) (string, error) {
	text = fenceOpenPattern.ReplaceAllString(text, "")
	text = fenceClosePattern.ReplaceAllString(text, "")

	for _, pattern := range extractionPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		statement := strings.TrimSpace(match[1])
		statement = whitespacePattern.ReplaceAllString(statement, " ")
		statement = strings.TrimSpace(strings.TrimRight(statement, ";"))

		upper := strings.ToUpper(statement)
		if strings.HasPrefix(upper, "SELECT") && strings.Contains(upper, "FROM EMPLOYEES") {
			return statement + ";", nil
		}
	}
	return "", ErrNoSQLFound
}
