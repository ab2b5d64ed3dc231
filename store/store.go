// Package store persists users, task lists and to-dos. Two backends
// implement Store: Gorm (postgres) and Memory.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/basit/tasklist-backend/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyMember  = errors.New("user is already a member of the task list")
	ErrDuplicateEmail = errors.New("email is already registered")
)

// Store is the create/read/update/delete surface the resolvers depend on.
// Implementations must be safe for concurrent use.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateTaskList(ctx context.Context, list *models.TaskList) error
	FindTaskList(ctx context.Context, id uuid.UUID) (*models.TaskList, error)
	ListTaskListsForMember(ctx context.Context, userID uuid.UUID) ([]*models.TaskList, error)
	UpdateTaskListTitle(ctx context.Context, id uuid.UUID, title string) (*models.TaskList, error)
	// AddTaskListMember appends userID to the member set in one atomic
	// step, returning ErrAlreadyMember when it is already present.
	AddTaskListMember(ctx context.Context, listID, userID uuid.UUID) (*models.TaskList, error)
	DeleteTaskList(ctx context.Context, id uuid.UUID) error

	CreateToDo(ctx context.Context, todo *models.ToDo) error
	FindToDo(ctx context.Context, id uuid.UUID) (*models.ToDo, error)
	ListToDosByTaskList(ctx context.Context, listID uuid.UUID) ([]*models.ToDo, error)
	UpdateToDo(ctx context.Context, id uuid.UUID, patch models.ToDoPatch) (*models.ToDo, error)
	DeleteToDo(ctx context.Context, id uuid.UUID) error
	// DeleteOrphanToDos removes to-dos whose task list no longer exists.
	DeleteOrphanToDos(ctx context.Context) (int64, error)
}
