package database

import (
	"strings"
	"testing"
)

func TestSqliteDSNPragmaForm(t *testing.T) {
	dsn := sqliteDSN("data/test.db")

	if !strings.HasPrefix(dsn, "data/test.db?") {
		t.Fatalf("unexpected DSN prefix: %s", dsn)
	}

	// The driver only honors pragmas in _pragma=name(value) form;
	// bare _journal_mode style keys are silently dropped
	for _, want := range []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(10000)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=foreign_keys(ON)",
		"_txlock=immediate",
	} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN missing %q: %s", want, dsn)
		}
	}
	if strings.Contains(dsn, "_journal_mode=") {
		t.Errorf("DSN carries an unsupported pragma key: %s", dsn)
	}
}
