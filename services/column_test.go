package services

import (
	"fmt"
	"sync"
	"testing"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnCreateAppendsByDefault(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewColumnService(db)

	for i, name := range []string{"A", "B", "C"} {
		created, err := svc.Create(owner.UserID, dto.CreateColumnRequest{Name: name, ProjectID: project.ProjectID})
		require.NoError(t, err)
		assert.Equal(t, i, created.Position)
		assert.NotNil(t, created.Tasks)
	}
	requireContiguous(t, columnPositions(t, db, project.ProjectID))
}

func TestColumnCreateConcurrentAppends(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewColumnService(db)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(owner.UserID, dto.CreateColumnRequest{
				Name:      fmt.Sprintf("C%d", i),
				ProjectID: project.ProjectID,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// every writer got its own slot
	got := columnPositions(t, db, project.ProjectID)
	require.Len(t, got, writers)
	requireContiguous(t, got)
}

func TestColumnCreateAtPositionShiftsSiblings(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	seedColumn(t, db, project.ProjectID, "A", 0)
	seedColumn(t, db, project.ProjectID, "B", 1)
	svc := NewColumnService(db)

	created, err := svc.Create(owner.UserID, dto.CreateColumnRequest{Name: "X", ProjectID: project.ProjectID, Position: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Position)

	got := columnPositions(t, db, project.ProjectID)
	requireContiguous(t, got)
	assert.Equal(t, map[string]int{"A": 0, "X": 1, "B": 2}, got)
}

func TestColumnCreateRejectsNegativePosition(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewColumnService(db)

	_, err := svc.Create(owner.UserID, dto.CreateColumnRequest{Name: "X", ProjectID: project.ProjectID, Position: intPtr(-2)})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestColumnCreateRoleGate(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	member := seedUser(t, db, "member@example.com")
	viewer := seedUser(t, db, "viewer@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	seedMember(t, db, project.ProjectID, member.UserID, model.RoleMember)
	seedMember(t, db, project.ProjectID, viewer.UserID, model.RoleViewer)
	svc := NewColumnService(db)

	for _, u := range []model.User{member, viewer} {
		_, err := svc.Create(u.UserID, dto.CreateColumnRequest{Name: "X", ProjectID: project.ProjectID})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	}
}

func TestColumnRemoveClosesGap(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	seedColumn(t, db, project.ProjectID, "A", 0)
	colB := seedColumn(t, db, project.ProjectID, "B", 1)
	seedColumn(t, db, project.ProjectID, "C", 2)
	taskInB := seedTask(t, db, project.ProjectID, colB.ColumnID, "T", 0)
	svc := NewColumnService(db)

	require.NoError(t, svc.Remove(owner.UserID, colB.ColumnID))

	got := columnPositions(t, db, project.ProjectID)
	requireContiguous(t, got)
	assert.Equal(t, map[string]int{"A": 0, "C": 1}, got)

	// tasks of the removed column go with it
	var n int64
	require.NoError(t, db.Model(&model.Task{}).Where("task_id = ?", taskInB.TaskID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestColumnUpdateMove(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	colA := seedColumn(t, db, project.ProjectID, "A", 0)
	seedColumn(t, db, project.ProjectID, "B", 1)
	seedColumn(t, db, project.ProjectID, "C", 2)
	svc := NewColumnService(db)

	updated, err := svc.Update(owner.UserID, colA.ColumnID, dto.UpdateColumnRequest{Position: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Position)

	got := columnPositions(t, db, project.ProjectID)
	requireContiguous(t, got)
	assert.Equal(t, map[string]int{"B": 0, "C": 1, "A": 2}, got)
}

func TestColumnUpdatePositionOutOfRange(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	colA := seedColumn(t, db, project.ProjectID, "A", 0)
	seedColumn(t, db, project.ProjectID, "B", 1)
	svc := NewColumnService(db)

	_, err := svc.Update(owner.UserID, colA.ColumnID, dto.UpdateColumnRequest{Position: intPtr(2)})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	// nothing shifted
	assert.Equal(t, map[string]int{"A": 0, "B": 1}, columnPositions(t, db, project.ProjectID))
}

func TestColumnUpdateFields(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	col := seedColumn(t, db, project.ProjectID, "A", 0)
	svc := NewColumnService(db)

	updated, err := svc.Update(owner.UserID, col.ColumnID, dto.UpdateColumnRequest{Name: strPtr("Done"), Color: strPtr("#00ff00")})
	require.NoError(t, err)
	assert.Equal(t, "Done", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
	assert.Equal(t, 0, updated.Position)
}

func TestColumnGetRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	outsider := seedUser(t, db, "outsider@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	col := seedColumn(t, db, project.ProjectID, "A", 0)
	svc := NewColumnService(db)

	_, err := svc.Get(outsider.UserID, col.ColumnID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(owner.UserID, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(owner.UserID, col.ColumnID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestColumnListOrdered(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	seedColumn(t, db, project.ProjectID, "C", 2)
	seedColumn(t, db, project.ProjectID, "A", 0)
	colB := seedColumn(t, db, project.ProjectID, "B", 1)
	seedTask(t, db, project.ProjectID, colB.ColumnID, "T2", 1)
	seedTask(t, db, project.ProjectID, colB.ColumnID, "T1", 0)
	svc := NewColumnService(db)

	columns, err := svc.List(owner.UserID, project.ProjectID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{columns[0].Name, columns[1].Name, columns[2].Name})
	require.Len(t, columns[1].Tasks, 2)
	assert.Equal(t, "T1", columns[1].Tasks[0].Title)
	assert.Equal(t, "T2", columns[1].Tasks[1].Title)
}
