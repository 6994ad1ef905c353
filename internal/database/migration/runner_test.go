package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX x ON t (a);")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (a int);\n")},
		"README.md":         {Data: []byte("notes")},
		"v3__lower.sql":     {Data: []byte("SELECT 1;")},
	}
	migs, err := loadMigrations(src)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE t (a int);", migs[0].SQL)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_Rejects(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestPlan(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "init", Checksum: "aaa"},
		{Version: 2, Name: "idx", Checksum: "bbb"},
	}

	pending, err := plan(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "aaa"}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].Version)

	_, err = plan(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "changed"}})
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestRunner_EmbeddedMigrations(t *testing.T) {
	migs, err := Runner{}.Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS job_matches")
	assert.Contains(t, migs[0].SQL, "skill_gap_analysis JSONB")
}

func TestRunner_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "V7__x.sql"), []byte("SELECT 7;"), 0o600))

	migs, err := Runner{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 1)
	assert.Equal(t, int64(7), migs[0].Version)

	migs, err = Runner{Dir: filepath.Join(dir, "missing")}.Load()
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestRunner_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(context.Background(), nil))
	_, err := Runner{}.Status(context.Background(), nil)
	assert.Error(t, err)
}
