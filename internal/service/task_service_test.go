package service

import (
	"context"
	"errors"
	"testing"

	"taskr/internal/domain"
)

func registerTestUser(t *testing.T, svc UserService, name, email string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), name, email, "password", "password")
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}

func TestAddAndListOrderedByDueDate(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")

	if _, err := taskSvc.Add(ctx, owner.ID, "Water the plants", "25/12/2026", 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := taskSvc.Add(ctx, owner.ID, "Pay rent", "01/10/2026", 9); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// same due date as the first task, inserted later
	if _, err := taskSvc.Add(ctx, owner.ID, "Wrap presents", "25/12/2026", 5); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}

	want := []string{"Pay rent", "Water the plants", "Wrap presents"}
	if len(list) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("task[%d] = %q, want %q", i, list[i].Name, name)
		}
		if list[i].Status != domain.TaskStatusOpen {
			t.Errorf("task[%d] status = %q, want open", i, list[i].Status)
		}
	}
}

func TestAddValidatesDueDateAndPriority(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")

	if _, err := taskSvc.Add(ctx, owner.ID, "Bad date", "not-a-date", 5); !errors.Is(err, ErrInvalidDueDate) {
		t.Errorf("malformed date: got %v, want ErrInvalidDueDate", err)
	}
	if _, err := taskSvc.Add(ctx, owner.ID, "Bad date", "2026-12-25", 5); !errors.Is(err, ErrInvalidDueDate) {
		t.Errorf("wrong layout: got %v, want ErrInvalidDueDate", err)
	}
	if _, err := taskSvc.Add(ctx, owner.ID, "Too low", "25/12/2026", 0); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("priority 0: got %v, want ErrInvalidPriority", err)
	}
	if _, err := taskSvc.Add(ctx, owner.ID, "Too high", "25/12/2026", 11); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("priority 11: got %v, want ErrInvalidPriority", err)
	}

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("rejected adds must not persist, got %d tasks", len(list))
	}
}

func TestCloseSetsStatusForOwner(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")
	task, err := taskSvc.Add(ctx, owner.ID, "Water the plants", "25/12/2026", 3)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	closed, err := taskSvc.Close(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed.Status != domain.TaskStatusClosed {
		t.Errorf("status = %q, want closed", closed.Status)
	}

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 1 || list[0].Status != domain.TaskStatusClosed {
		t.Error("closed status was not persisted")
	}
}

func TestCloseAndDeleteRejectNonOwner(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")
	other := registerTestUser(t, userSvc, "Fletcher", "fletcher@realpython.com")

	task, err := taskSvc.Add(ctx, owner.ID, "Water the plants", "25/12/2026", 3)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := taskSvc.Close(ctx, task.ID, other.ID); !errors.Is(err, ErrNotTaskOwner) {
		t.Errorf("Close by non-owner: got %v, want ErrNotTaskOwner", err)
	}
	if err := taskSvc.Delete(ctx, task.ID, other.ID); !errors.Is(err, ErrNotTaskOwner) {
		t.Errorf("Delete by non-owner: got %v, want ErrNotTaskOwner", err)
	}

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 1 || list[0].Status != domain.TaskStatusOpen {
		t.Error("task must be unchanged after rejected mutations")
	}
}

func TestDeleteRemovesOwnedTask(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")
	task, err := taskSvc.Add(ctx, owner.ID, "Water the plants", "25/12/2026", 3)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := taskSvc.Delete(ctx, task.ID, owner.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(list))
	}
}

func TestCloseUnknownTask(t *testing.T) {
	users, tasks := newTestRepos(t)
	userSvc := NewUserService(users)
	taskSvc := NewTaskService(tasks)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "Michael", "michael@realpython.com")

	if _, err := taskSvc.Close(ctx, 999, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
	if err := taskSvc.Delete(ctx, 999, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}
