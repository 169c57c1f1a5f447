package person

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pytechtest/people-api/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := utils.InitDatabase(&utils.DatabaseConfig{
		Driver:            utils.DriverSQLite,
		SQLitePath:        filepath.Join(t.TempDir(), "test.db"),
		SQLiteBusyTimeout: 5,
	}, &Person{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func adaForm() Form {
	return Form{
		FieldFirstName:  "Ada",
		FieldLastName:   "Lovelace",
		FieldEnabled:    true,
		FieldAuthorised: false,
	}
}
