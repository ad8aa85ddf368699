package services

import (
	"testing"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreate(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewTagService(db)

	tag, err := svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	require.NoError(t, err)
	assert.Equal(t, "bug", tag.Name)
}

func TestTagCreateDuplicateNameConflict(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewTagService(db)

	_, err := svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	require.NoError(t, err)
	_, err = svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#00ff00", ProjectID: project.ProjectID})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// same name in a different project is fine
	other := seedProject(t, db, "q", owner.UserID, model.RoleOwner)
	_, err = svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: other.ProjectID})
	assert.NoError(t, err)
}

func TestTagUpdateRenameConflict(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	svc := NewTagService(db)

	_, err := svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	require.NoError(t, err)
	feature, err := svc.Create(owner.UserID, dto.CreateTagRequest{Name: "feature", Color: "#00ff00", ProjectID: project.ProjectID})
	require.NoError(t, err)

	_, err = svc.Update(owner.UserID, feature.TagID, dto.UpdateTagRequest{Name: strPtr("bug")})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	updated, err := svc.Update(owner.UserID, feature.TagID, dto.UpdateTagRequest{Color: strPtr("#0000ff")})
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", updated.Color)
}

func TestTagMutationRoleGate(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	member := seedUser(t, db, "member@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	seedMember(t, db, project.ProjectID, member.UserID, model.RoleMember)
	svc := NewTagService(db)

	_, err := svc.Create(member.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	tag, err := svc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	require.NoError(t, err)

	// members can read
	_, err = svc.Get(member.UserID, tag.TagID)
	assert.NoError(t, err)

	err = svc.Remove(member.UserID, tag.TagID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestTagRemoveDetachesTasks(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	project := seedProject(t, db, "p", owner.UserID, model.RoleOwner)
	col := seedColumn(t, db, project.ProjectID, "A", 0)
	tagSvc := NewTagService(db)
	taskSvc := NewTaskService(db)

	tag, err := tagSvc.Create(owner.UserID, dto.CreateTagRequest{Name: "bug", Color: "#ff0000", ProjectID: project.ProjectID})
	require.NoError(t, err)
	task, err := taskSvc.Create(owner.UserID, dto.CreateTaskRequest{
		Title:     "T",
		ProjectID: project.ProjectID,
		ColumnID:  col.ColumnID,
		TagIDs:    []uint{tag.TagID},
	})
	require.NoError(t, err)

	require.NoError(t, tagSvc.Remove(owner.UserID, tag.TagID))

	reloaded, err := taskSvc.Get(owner.UserID, task.TaskID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}
