package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestDumpCapturesPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_leads_external_id", TableName: "leads"}
	err := Wrap(CodeConflict, fmt.Errorf("insert lead: %w", pgErr), "lead already exists")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %q", dump.Code)
	}
	if dump.DBCode != "23505" || dump.DBConstraint != "idx_leads_external_id" || dump.DBTable != "leads" {
		t.Fatalf("unexpected db diagnostics %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected three chain entries, got %v", dump.Chain)
	}

	fields := dump.LogFields()
	if fields["db_constraint"] != "idx_leads_external_id" {
		t.Fatalf("expected constraint in log fields, got %v", fields)
	}
	if _, ok := fields["db_column"]; ok {
		t.Fatal("empty diagnostics should be omitted")
	}
}

func TestDumpCapturesSQLiteCode(t *testing.T) {
	err := fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	dump := Dump(err)
	if dump.DBCode != "sqlite:2067" {
		t.Fatalf("expected sqlite extended code, got %q", dump.DBCode)
	}
}

func TestDumpPlainError(t *testing.T) {
	fields := Dump(stdErrors.New("boom")).LogFields()
	if fields["error"] != "boom" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields["error_chain"]; ok {
		t.Fatal("single-entry chain should be omitted")
	}
	if _, ok := fields["error_code"]; ok {
		t.Fatal("untyped error has no code")
	}
}
