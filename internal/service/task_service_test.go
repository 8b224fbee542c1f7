package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func newTaskFixture(t *testing.T) (TaskService, string, string) {
	t.Helper()

	userRepo, taskRepo, _ := newTestRepos(t)
	userSvc := NewUserService(userRepo)
	ctx := context.Background()

	alice, err := userSvc.Signup(ctx, "Alice", "alice@tasks.com", "alices-password")
	require.NoError(t, err)
	bob, err := userSvc.Signup(ctx, "Bob", "bob@tasks.com", "bobs-password")
	require.NoError(t, err)

	return NewTaskService(taskRepo), alice.ID, bob.ID
}

func TestTaskService_CreateDefaultsStatus(t *testing.T) {
	svc, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, "T1", "", "")
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, task.Status)
	require.Equal(t, alice, task.OwnerID)

	fetched, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	require.Equal(t, "T1", fetched.Title)
	require.Equal(t, domain.TaskStatusPending, fetched.Status)
}

func TestTaskService_CreateValidation(t *testing.T) {
	svc, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "", "", "")
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Create(ctx, alice, "T", "", "archived")
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestTaskService_OwnershipHidesForeignTasks(t *testing.T) {
	svc, alice, bob := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, "private", "", "")
	require.NoError(t, err)

	// reads, updates and deletes by a non-owner all look like a missing task
	_, err = svc.Get(ctx, bob, task.ID)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Update(ctx, bob, task.ID, "stolen", "", "")
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))

	err = svc.Delete(ctx, bob, task.ID)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// the owner still sees it untouched
	got, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	require.Equal(t, "private", got.Title)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	svc, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, "T1", "original description", "")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, task.ID, "", "", domain.TaskStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, "T1", updated.Title)
	require.Equal(t, "original description", updated.Description)
	require.Equal(t, domain.TaskStatusCompleted, updated.Status)
}

func TestTaskService_UpdateInvalidStatus(t *testing.T) {
	svc, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, "T1", "", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, task.ID, "", "", "bogus")
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestTaskService_ListScopedToOwner(t *testing.T) {
	svc, alice, bob := newTaskFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "a1", "", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "b1", "", "")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "a1", tasks[0].Title)
}
