package postgres

import (
	"context"
	"testing"
	"time"

	"skillmatch/internal/config"
	"skillmatch/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost: " db ", DBPort: "5432", DBUser: "app", DBPassword: "pw", DBName: "skills",
	})
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=skills sslmode=disable", dsn)
}

func TestPoolConfig(t *testing.T) {
	pcfg, err := poolConfig(config.DatabaseConfig{
		DBHost: "db", DBPort: "5432", DBUser: "app", DBName: "skills",
		PoolMaxConns:      7,
		PoolMinConns:      2,
		ConnectTimeout:    time.Second,
		MaxConnLifetime:   time.Minute,
		HealthCheckPeriod: 10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(7), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, time.Minute, pcfg.MaxConnLifetime)
	assert.Equal(t, 10*time.Second, pcfg.HealthCheckPeriod)
}

func TestPool_NotConnected(t *testing.T) {
	var p *Pool
	ctx := context.Background()
	assert.ErrorIs(t, p.Ping(ctx), database.ErrNotConnected)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNotConnected)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), database.ErrNotConnected)
	assert.NoError(t, p.Close())
}

func TestDSN_NoPassword(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "db", DBPort: "5432", DBUser: "app", DBName: "skills", DBSSLMode: "require"})
	assert.Equal(t, "host=db port=5432 user=app dbname=skills sslmode=require", dsn)
}
