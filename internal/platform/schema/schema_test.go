package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationPendingIndex(t *testing.T) {
	stmts := Verifications.IndexStatements()
	var found string
	for _, s := range stmts {
		if strings.Contains(s, "verifications_pending_identifier_key") {
			found = s
		}
	}
	require.NotEmpty(t, found)
	assert.Equal(t,
		"CREATE UNIQUE INDEX IF NOT EXISTS verifications_pending_identifier_key ON verifications (identifier, type) WHERE status = 'PENDING'",
		found)
}

func TestCreateStatement(t *testing.T) {
	stmt := Verifications.CreateStatement()
	assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS verifications ("))
	assert.Contains(t, stmt, "id UUID PRIMARY KEY")
	assert.Contains(t, stmt, "user_id UUID REFERENCES users(id) ON DELETE SET NULL")
	assert.Contains(t, stmt, "otp_attempts INTEGER NOT NULL DEFAULT 0")
	assert.Contains(t, stmt, "CHECK (otp_expires_at <= expires_at)")
	assert.NotContains(t, stmt, "user_id UUID NOT NULL")
}

func TestStatementsFollowDependencyOrder(t *testing.T) {
	stmts := Statements()
	pos := func(table string) int {
		for i, s := range stmts {
			if strings.HasPrefix(s, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				return i
			}
		}
		return -1
	}
	require.NotEqual(t, -1, pos("users"))
	assert.Less(t, pos("tenants"), pos("users"))
	assert.Less(t, pos("users"), pos("verifications"))
	assert.Less(t, pos("users"), pos("user_kyc"))
	assert.Less(t, pos("users"), pos("payment_methods"))
}

func TestTableNamesReverseOrder(t *testing.T) {
	names := TableNames()
	assert.Equal(t, "outbox", names[0])
	assert.Equal(t, "tenants", names[len(names)-1])
}

func TestColumnLookup(t *testing.T) {
	col, ok := UserKYC.Column("stage_metadata")
	require.True(t, ok)
	assert.Equal(t, "JSONB", col.Type)

	_, ok = UserKYC.Column("missing")
	assert.False(t, ok)
	assert.Equal(t, "id", Tenants.ColumnNames()[0])
}
