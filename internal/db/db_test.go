package db

import (
	"strings"
	"testing"
)

func TestChangeTriggerQuotesChannel(t *testing.T) {
	stmts := ChangeTriggerSQL("clinic's_changes")
	if len(stmts) != 3 {
		t.Fatalf("statements = %d", len(stmts))
	}
	if !strings.Contains(stmts[0], "pg_notify('clinic''s_changes'") {
		t.Fatalf("channel not quoted:\n%s", stmts[0])
	}
	if !strings.Contains(stmts[2], "AFTER INSERT OR UPDATE OR DELETE ON appointments") {
		t.Fatalf("trigger:\n%s", stmts[2])
	}
}
