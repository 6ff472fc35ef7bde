package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormConfigEnablesErrorTranslation(t *testing.T) {
	cfg := gormConfig(gormlogger.Warn)
	assert.True(t, cfg.TranslateError)
}

// Unique violations arrive from the driver as *pgconn.PgError. The
// repositories only see gorm.ErrDuplicatedKey when the dialector translates
// them, so the raw error must not match and the translated one must.
func TestUniqueViolationTranslatesToDuplicatedKey(t *testing.T) {
	raw := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	assert.NotErrorIs(t, raw, gorm.ErrDuplicatedKey)

	translated := postgres.Dialector{}.Translate(raw)
	require.ErrorIs(t, translated, gorm.ErrDuplicatedKey)
}
