package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/pkg/config"
)

func TestMigrationsEmbedded_UpDownPairs(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrationsEmbedded_Tables(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	sql := string(raw)
	for _, table := range []string{
		"stores", "users", "shifts", "revenue_records", "commission_rules", "fixed_costs",
		"suppliers", "products", "price_history", "invoice_imports", "bank_rules", "bank_transactions",
	} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, sql, "UNIQUE (product_id, invoice_number, invoice_date)")
}

func TestMigrationURL(t *testing.T) {
	u, err := MigrationURL(config.DBConfig{DatabaseURL: "postgres://app:s3cr%40t@db:5432/ristoranti?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "pgx5://app:s3cr%40t@db:5432/ristoranti?sslmode=disable", u)

	u, err = MigrationURL(config.DBConfig{Host: "localhost", Port: 5433, User: "postgres", Password: "pw", DBName: "r", SSLMode: "disable"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "pgx5://postgres:pw@localhost:5433/r"))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", nullIfEmpty("x"))
	assert.Nil(t, nullIDs(nil))
	assert.Equal(t, []string{"a"}, nullIDs([]string{"a"}))
	assert.Equal(t, []string{}, storeIDsParam(nil))
}
