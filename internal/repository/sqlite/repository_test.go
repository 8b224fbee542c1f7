package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

func openTestRepos(t *testing.T) (repository.UserRepository, repository.TaskRepository, repository.AttachmentRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	attachments := NewAttachmentRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, tasks.Init(ctx))
	require.NoError(t, attachments.Init(ctx))

	return users, tasks, attachments
}

func createTestUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
	require.NoError(t, users.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users, _, _ := openTestRepos(t)
	ctx := context.Background()

	createTestUser(t, users, "a@x.com")

	err := users.Create(ctx, &domain.User{Name: "Other", Email: "a@x.com", PasswordHash: "h"})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserRepository_GetByEmailAndID(t *testing.T) {
	users, _, _ := openTestRepos(t)
	ctx := context.Background()

	created := createTestUser(t, users, "b@x.com")

	byEmail, err := users.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "b@x.com", byID.Email)

	_, err = users.GetByEmail(ctx, "missing@x.com")
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUserRepository_Update(t *testing.T) {
	users, _, _ := openTestRepos(t)
	ctx := context.Background()

	user := createTestUser(t, users, "c@x.com")
	user.Name = "Renamed"
	user.Email = "renamed@x.com"
	require.NoError(t, users.Update(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "renamed@x.com", got.Email)

	err = users.Update(ctx, &domain.User{ID: "nope", Name: "x", Email: "x@x.com", PasswordHash: "h"})
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTaskRepository_CRUD(t *testing.T) {
	users, tasks, _ := openTestRepos(t)
	ctx := context.Background()

	owner := createTestUser(t, users, "owner@x.com")

	task := &domain.Task{
		Title:   "T1",
		Status:  domain.TaskStatusPending,
		OwnerID: owner.ID,
	}
	require.NoError(t, tasks.Create(ctx, task))
	require.NotEmpty(t, task.ID)

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "T1", got.Title)
	require.Equal(t, owner.ID, got.OwnerID)

	got.Status = domain.TaskStatusCompleted
	require.NoError(t, tasks.Update(ctx, got))

	updated, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, updated.Status)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	_, err = tasks.Get(ctx, task.ID)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))

	err = tasks.Delete(ctx, task.ID)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	users, tasks, _ := openTestRepos(t)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice@x.com")
	bob := createTestUser(t, users, "bob@x.com")

	for _, title := range []string{"a1", "a2"} {
		require.NoError(t, tasks.Create(ctx, &domain.Task{Title: title, Status: domain.TaskStatusPending, OwnerID: alice.ID}))
	}
	require.NoError(t, tasks.Create(ctx, &domain.Task{Title: "b1", Status: domain.TaskStatusPending, OwnerID: bob.ID}))

	aliceTasks, err := tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	for _, task := range aliceTasks {
		require.Equal(t, alice.ID, task.OwnerID)
	}

	bobTasks, err := tasks.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
	require.Equal(t, "b1", bobTasks[0].Title)
}

func TestAttachmentRepository_LifecycleAndTaskDelete(t *testing.T) {
	users, tasks, attachments := openTestRepos(t)
	ctx := context.Background()

	owner := createTestUser(t, users, "files@x.com")
	task := &domain.Task{Title: "with files", Status: domain.TaskStatusPending, OwnerID: owner.ID}
	require.NoError(t, tasks.Create(ctx, task))

	att := &domain.Attachment{
		TaskID:      task.ID,
		Name:        "report.pdf",
		Size:        1024,
		ContentType: "application/pdf",
		Key:         "task-attachments/" + task.ID + "/report.pdf",
	}
	require.NoError(t, attachments.Create(ctx, att))
	require.NotEmpty(t, att.ID)

	got, err := attachments.Get(ctx, att.ID)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", got.Name)

	list, err := attachments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// deleting the task removes its attachment rows in the same transaction
	require.NoError(t, tasks.Delete(ctx, task.ID))
	list, err = attachments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = attachments.Get(ctx, att.ID)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
