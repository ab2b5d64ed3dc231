package resolvers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/basit/tasklist-backend/auth"
	"github.com/basit/tasklist-backend/graph/model"
	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

// Resolver holds dependencies shared by every query, mutation and field
// resolver. It carries no per-request state; identity travels in the
// context.
type Resolver struct {
	Store     store.Store
	Tokens    *auth.TokenIssuer
	Passwords *auth.Passwords
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

func NewResolver(st store.Store, tokens *auth.TokenIssuer, passwords *auth.Passwords, logger logrus.FieldLogger) *Resolver {
	return &Resolver{
		Store:     st,
		Tokens:    tokens,
		Passwords: passwords,
		Logger:    logger,
		Now:       time.Now,
	}
}

type QueryResolver interface {
	MyTaskLists(ctx context.Context) ([]*models.TaskList, error)
	GetTaskList(ctx context.Context, id string) (*models.TaskList, error)
}

type MutationResolver interface {
	SignUp(ctx context.Context, input model.SignUpInput) (*model.AuthUser, error)
	SignIn(ctx context.Context, input model.SignInInput) (*model.AuthUser, error)
	CreateTaskList(ctx context.Context, title string) (*models.TaskList, error)
	UpdateTaskList(ctx context.Context, id string, title string) (*models.TaskList, error)
	DeleteTaskList(ctx context.Context, id string) (bool, error)
	AddUserToTaskList(ctx context.Context, taskListID string, userID string) (*models.TaskList, error)
	CreateToDo(ctx context.Context, content string, taskListID string) (*models.ToDo, error)
	UpdateToDo(ctx context.Context, id string, content *string, isCompleted bool) (*models.ToDo, error)
	DeleteToDo(ctx context.Context, id string) (bool, error)
}

type UserResolver interface {
	ID(ctx context.Context, obj *models.User) (string, error)
}

type TaskListResolver interface {
	ID(ctx context.Context, obj *models.TaskList) (string, error)
	CreatedAt(ctx context.Context, obj *models.TaskList) (string, error)
	Progress(ctx context.Context, obj *models.TaskList) (float64, error)
	Users(ctx context.Context, obj *models.TaskList) ([]*models.User, error)
	Todos(ctx context.Context, obj *models.TaskList) ([]*models.ToDo, error)
}

type ToDoResolver interface {
	ID(ctx context.Context, obj *models.ToDo) (string, error)
	TaskList(ctx context.Context, obj *models.ToDo) (*models.TaskList, error)
}

func (r *Resolver) Query() QueryResolver       { return &queryResolver{r} }
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }
func (r *Resolver) User() UserResolver         { return &userResolver{r} }
func (r *Resolver) TaskList() TaskListResolver { return &taskListResolver{r} }
func (r *Resolver) ToDo() ToDoResolver         { return &toDoResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type taskListResolver struct{ *Resolver }
type toDoResolver struct{ *Resolver }

// Key type for context values
type contextKey string

const userKey contextKey = "user"

// WithUser returns a context carrying the resolved identity. A nil user
// leaves the request anonymous.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userKey, user)
}

func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// requireUser is the access policy shared by every protected operation.
func requireUser(ctx context.Context) (*models.User, error) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
