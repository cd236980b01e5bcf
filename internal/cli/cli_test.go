package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/config"
	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/entities"
)

func init() {
	color.NoColor = true
}

const testPassword = "correct horse battery"

func testConfig(t *testing.T) ConfigLoader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jianjin.db")
	return func() *config.Config {
		return &config.Config{
			Database: config.Database{Driver: config.DriverSQLite, Path: path},
			Auth:     config.Auth{BcryptCost: 4},
		}
	}
}

func execute(t *testing.T, load ConfigLoader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test", load)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func openTestDB(t *testing.T, load ConfigLoader) *database.Database {
	t.Helper()
	db, err := database.Open(load().Database)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateUserCommand(t *testing.T) {
	load := testConfig(t)

	out, err := execute(t, load, "create-user", "--username", "alice", "--email", "alice@example.com", "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Created user alice")

	db := openTestDB(t, load)
	user, err := auth.NewService(db.DB, load().Auth).Authenticate("alice", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = execute(t, load, "create-user", "--username", "alice", "--email", "other@example.com", "--password", testPassword)
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestCreateUserCommand_PasswordFromEnv(t *testing.T) {
	load := testConfig(t)
	t.Setenv(PasswordEnv, testPassword)

	_, err := execute(t, load, "create-user", "--username", "bob", "--email", "bob@example.com")
	require.NoError(t, err)
}

func TestCreateUserCommand_Errors(t *testing.T) {
	load := testConfig(t)
	t.Setenv(PasswordEnv, "")

	_, err := execute(t, load, "create-user", "--username", "bob", "--email", "bob@example.com")
	assert.ErrorContains(t, err, "password is required")

	_, err = execute(t, load, "create-user", "--email", "bob@example.com", "--password", testPassword)
	assert.ErrorContains(t, err, "username")

	_, err = execute(t, load, "create-user", "--username", "bob", "--email", "bob@example.com", "--password", "short")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestSetPasswordCommand(t *testing.T) {
	load := testConfig(t)
	_, err := execute(t, load, "create-user", "--username", "alice", "--email", "alice@example.com", "--password", testPassword)
	require.NoError(t, err)

	out, err := execute(t, load, "set-password", "--username", "alice", "--password", "another long password")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated for alice")

	db := openTestDB(t, load)
	_, err = auth.NewService(db.DB, load().Auth).Authenticate("alice", "another long password")
	assert.NoError(t, err)

	_, err = execute(t, load, "set-password", "--username", "nobody", "--password", "another long password")
	assert.Error(t, err)
}

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &row))
	}
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportXLSXCommand(t *testing.T) {
	load := testConfig(t)
	_, err := execute(t, load, "create-user", "--username", "alice", "--email", "alice@example.com", "--password", testPassword)
	require.NoError(t, err)

	path := writeSheet(t, [][]any{
		{"word", "pinyin", "definition", "part_of_speech", "tags", "notes"},
		{"你好", "ni3hao3", "hello", "", "greeting"},
		{"猫", "mao1", "cat", "dinosaur"},
	})

	t.Run("dry run saves nothing", func(t *testing.T) {
		out, err := execute(t, load, "import-xlsx", "--file", path, "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "Dry run: 2 rows")
		assert.Contains(t, out, "你好")
	})

	t.Run("user is required", func(t *testing.T) {
		_, err := execute(t, load, "import-xlsx", "--file", path)
		assert.ErrorContains(t, err, "user")
	})

	t.Run("imports rows", func(t *testing.T) {
		out, err := execute(t, load, "import-xlsx", "--file", path, "--user", "alice")
		require.NoError(t, err)
		assert.Contains(t, out, "created: 1")
		assert.Contains(t, out, "rejected: 1")
		assert.Contains(t, out, "dinosaur")

		db := openTestDB(t, load)
		var user entities.User
		require.NoError(t, db.DB.Where("username = ?", "alice").First(&user).Error)
		found, err := words.NewRepository(db.DB).SearchExact(user.ID, "你好")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := execute(t, load, "import-xlsx", "--file", path, "--user", "nobody")
		assert.ErrorContains(t, err, "nobody")
	})
}

func TestCleanupTagsCommand(t *testing.T) {
	load := testConfig(t)
	db := openTestDB(t, load)
	orphans := []entities.Tag{{Tag: "old"}, {Tag: "unused"}}
	require.NoError(t, db.DB.Omit(clause.Associations).Create(&orphans).Error)

	out, err := execute(t, load, "cleanup-tags", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "2 orphan tags would be deleted")

	out, err = execute(t, load, "cleanup-tags")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 orphan tags")

	var count int64
	require.NoError(t, db.DB.Model(&entities.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand("1.2.3", testConfig(t))
	for _, name := range []string{"serve", "create-user", "set-password", "import-xlsx", "cleanup-tags"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.Equal(t, "1.2.3", root.Version)
}
