package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders postgres SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

// captureInserts records every INSERT statement the db builds.
func captureInserts(t *testing.T, db *gorm.DB) *[]*gorm.Statement {
	t.Helper()
	var stmts []*gorm.Statement
	err := db.Callback().Create().After("gorm:create").Register("test:capture_insert", func(tx *gorm.DB) {
		stmts = append(stmts, tx.Statement)
	})
	require.NoError(t, err)
	return &stmts
}

// insertedValues pairs the column list of a single-row INSERT with its bound values.
func insertedValues(t *testing.T, stmt *gorm.Statement) map[string]interface{} {
	t.Helper()
	sql := stmt.SQL.String()
	start := strings.Index(sql, "(")
	end := strings.Index(sql, ") VALUES")
	require.True(t, start >= 0 && end > start, "unexpected insert: %s", sql)

	cols := strings.Split(sql[start+1:end], ",")
	require.LessOrEqual(t, len(cols), len(stmt.Vars))

	out := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		out[strings.Trim(strings.TrimSpace(col), `"`)] = stmt.Vars[i]
	}
	return out
}
