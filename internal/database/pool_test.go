package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("driver: bad connection")))
	assert.False(t, isRetryableError(errors.New("syntax error at or near")))
	assert.False(t, isRetryableError(sql.ErrNoRows))
	assert.False(t, isRetryableError(nil))
}

func TestExecWithRetryStopsOnPermanentError(t *testing.T) {
	db := &DB{}
	calls := 0
	err := db.ExecWithRetry(context.Background(), func(context.Context) error {
		calls++
		return sql.ErrNoRows
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 1, calls)
}

func TestExecWithRetryRetriesConnectionErrors(t *testing.T) {
	db := &DB{}
	calls := 0
	err := db.ExecWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "parkify", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=parkify sslmode=disable", cfg.DSN())
}
