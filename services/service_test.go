package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"taskboard/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own named shared-cache db so parallel connections see the same
// data without leaking across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// concurrent writers on more than one connection trip sqlite's
	// shared-cache table locks
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Column{},
		&model.Task{},
		&model.Tag{},
		&model.RefreshToken{},
	)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()
	user := model.User{Name: email, Email: email, Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedProject creates a bare project plus one membership, without the
// default column the project service would add.
func seedProject(t *testing.T, db *gorm.DB, name string, userID uint, role model.Role) model.Project {
	t.Helper()
	project := model.Project{Name: name}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&model.ProjectMember{
		ProjectID: project.ProjectID,
		UserID:    userID,
		Role:      role,
	}).Error)
	return project
}

func seedMember(t *testing.T, db *gorm.DB, projectID, userID uint, role model.Role) {
	t.Helper()
	require.NoError(t, db.Create(&model.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}).Error)
}

func seedColumn(t *testing.T, db *gorm.DB, projectID uint, name string, position int) model.Column {
	t.Helper()
	column := model.Column{Name: name, Position: position, ProjectID: projectID}
	require.NoError(t, db.Create(&column).Error)
	return column
}

func seedTask(t *testing.T, db *gorm.DB, projectID, columnID uint, title string, position int) model.Task {
	t.Helper()
	task := model.Task{
		Title:     title,
		Type:      model.TypeTask,
		Status:    model.StatusTodo,
		Priority:  model.PriorityMedium,
		Position:  position,
		ProjectID: projectID,
		ColumnID:  columnID,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

// columnPositions returns name -> position for every column of a project.
func columnPositions(t *testing.T, db *gorm.DB, projectID uint) map[string]int {
	t.Helper()
	var columns []model.Column
	require.NoError(t, db.Where("project_id = ?", projectID).Find(&columns).Error)
	out := map[string]int{}
	for _, c := range columns {
		out[c.Name] = c.Position
	}
	return out
}

// taskPositions returns title -> position for every task of a column.
func taskPositions(t *testing.T, db *gorm.DB, columnID uint) map[string]int {
	t.Helper()
	var tasks []model.Task
	require.NoError(t, db.Where("column_id = ?", columnID).Find(&tasks).Error)
	out := map[string]int{}
	for _, task := range tasks {
		out[task.Title] = task.Position
	}
	return out
}

// requireContiguous asserts that the given positions are exactly {0..N-1}.
func requireContiguous(t *testing.T, positions map[string]int) {
	t.Helper()
	seen := make([]bool, len(positions))
	for name, p := range positions {
		require.GreaterOrEqual(t, p, 0, "position of %s", name)
		require.Less(t, p, len(positions), "position of %s", name)
		require.False(t, seen[p], "duplicate position %d at %s", p, name)
		seen[p] = true
	}
}
