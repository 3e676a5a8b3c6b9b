package nl2sql

import (
	"errors"
	"testing"
)

func TestExtractSQLStripsMarkdownFences(t *testing.T) {
	got, err := ExtractSQL("```sql\nSELECT * FROM employees;\n```")
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT * FROM employees;" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLFromCommentary(t *testing.T) {
	text := "Sure! Here is the query you asked for:\n\nSELECT * FROM employees WHERE skills ILIKE '%Python%';\n\nLet me know if you need anything else."
	got, err := ExtractSQL(text)
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT * FROM employees WHERE skills ILIKE '%Python%';" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLNormalizesWhitespace(t *testing.T) {
	got, err := ExtractSQL("SELECT *\n  FROM   employees\n  WHERE experience_years > 5;")
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT * FROM employees WHERE experience_years > 5;" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLAppendsExactlyOneSemicolon(t *testing.T) {
	got, err := ExtractSQL("SELECT * FROM employees WHERE skills ILIKE '%AWS%';;;")
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT * FROM employees WHERE skills ILIKE '%AWS%';" {
		t.Fatalf("ExtractSQL() = %q", got)
	}

	got, err = ExtractSQL("SELECT * FROM employees")
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT * FROM employees;" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLPrefersCompleteStatement(t *testing.T) {
	// The complete-statement pattern must win over the trailing bare line.
	text := "SELECT name, skills FROM employees WHERE experience_years > 3;\nSELECT something else"
	got, err := ExtractSQL(text)
	if err != nil {
		t.Fatalf("ExtractSQL() error = %v", err)
	}
	if got != "SELECT name, skills FROM employees WHERE experience_years > 3;" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLFailsWithoutEmployeesTable(t *testing.T) {
	_, err := ExtractSQL("SELECT * FROM orders;")
	if !errors.Is(err, ErrNoSQLFound) {
		t.Fatalf("error = %v, want %v", err, ErrNoSQLFound)
	}
}

func TestExtractSQLFailsOnNonSQLText(t *testing.T) {
	_, err := ExtractSQL("I cannot help with that request.")
	if !errors.Is(err, ErrNoSQLFound) {
		t.Fatalf("error = %v, want %v", err, ErrNoSQLFound)
	}
}

func TestExtractSQLRejectsNonSelectStatements(t *testing.T) {
	_, err := ExtractSQL("DELETE FROM employees;")
	if !errors.Is(err, ErrNoSQLFound) {
		t.Fatalf("error = %v, want %v", err, ErrNoSQLFound)
	}
}
