package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/cartview/pkg/config"
	"github.com/angelmondragon/cartview/pkg/db"
	"github.com/angelmondragon/cartview/pkg/enums"
)

func newSQLiteClient(t *testing.T) *db.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: enums.StoreDriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
	require.NoError(t, ValidateDir("migrations"))
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteClient(t)
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	require.NoError(t, Run(ctx, sqlDB, client.Dialect(), "", "up"))
	assert.True(t, client.DB().Migrator().HasTable("cart_entries"))

	version, err := CurrentVersion(ctx, sqlDB, client.Dialect())
	require.NoError(t, err)
	assert.Equal(t, int64(20261016120000), version)

	require.NoError(t, Run(ctx, sqlDB, client.Dialect(), DefaultDir, "down"))
	assert.False(t, client.DB().Migrator().HasTable("cart_entries"))
}

func TestMaybeAutoRun(t *testing.T) {
	ctx := context.Background()

	memoryCfg := &config.Config{Store: config.StoreConfig{Driver: enums.StoreDriverMemory}}
	require.NoError(t, MaybeAutoRun(ctx, memoryCfg, nil, nil))

	client := newSQLiteClient(t)
	sqliteCfg := &config.Config{Store: config.StoreConfig{Driver: enums.StoreDriverSQLite}}
	require.NoError(t, MaybeAutoRun(ctx, sqliteCfg, nil, client))
	assert.True(t, client.DB().Migrator().HasTable("cart_entries"))
}

func TestRunRequiresDialectAndDB(t *testing.T) {
	require.Error(t, Run(context.Background(), nil, "sqlite3", "", "up"))

	client := newSQLiteClient(t)
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	require.Error(t, Run(context.Background(), sqlDB, "", "", "up"))
	require.Error(t, MigrateToVersion(context.Background(), sqlDB, "sqlite3", "", "not-a-version"))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	nowUTC = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { nowUTC = func() time.Time { return time.Now().UTC() } })

	path, err := CreateSQLMigration(dir, "Add Cart Notes!")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20261016093000_add_cart_notes.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "-- +goose Down")
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "add cart notes")
	require.Error(t, err, "same version and name must not be overwritten")

	_, err = CreateSQLMigration(dir, "!!!")
	require.Error(t, err)
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o600))
	require.Error(t, ValidateDir(dir))
}
