package resolvers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

// createdAtLayout renders timestamps as ISO-8601 with millisecond
// precision, e.g. 2024-01-02T15:04:05.000Z.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Field resolvers only read from the store, so the executor may run them
// concurrently for sibling fields.

func (r *userResolver) ID(ctx context.Context, obj *models.User) (string, error) {
	return obj.ID.String(), nil
}

func (r *taskListResolver) ID(ctx context.Context, obj *models.TaskList) (string, error) {
	return obj.ID.String(), nil
}

func (r *taskListResolver) CreatedAt(ctx context.Context, obj *models.TaskList) (string, error) {
	return obj.CreatedAt.UTC().Format(createdAtLayout), nil
}

// Progress is the completed share of the list's to-dos in percent, 0 for
// an empty list.
func (r *taskListResolver) Progress(ctx context.Context, obj *models.TaskList) (float64, error) {
	todos, err := r.Store.ListToDosByTaskList(ctx, obj.ID)
	if err != nil {
		return 0, err
	}
	if len(todos) == 0 {
		return 0, nil
	}

	completed := 0
	for _, todo := range todos {
		if todo.IsCompleted {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(todos)), nil
}

// Users loads members in parallel. A member that no longer exists comes
// back as a nil entry.
func (r *taskListResolver) Users(ctx context.Context, obj *models.TaskList) ([]*models.User, error) {
	ids := obj.UserIDs()
	users := make([]*models.User, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := r.Store.FindUserByID(gctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			users[i] = user.Public()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *taskListResolver) Todos(ctx context.Context, obj *models.TaskList) ([]*models.ToDo, error) {
	return r.Store.ListToDosByTaskList(ctx, obj.ID)
}

func (r *toDoResolver) ID(ctx context.Context, obj *models.ToDo) (string, error) {
	return obj.ID.String(), nil
}

// TaskList resolves the owning list, or nil once it has been deleted.
func (r *toDoResolver) TaskList(ctx context.Context, obj *models.ToDo) (*models.TaskList, error) {
	list, err := r.Store.FindTaskList(ctx, obj.TaskListID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return list, err
}
