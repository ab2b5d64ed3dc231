package resolvers

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basit/tasklist-backend/auth"
	"github.com/basit/tasklist-backend/graph/model"
	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

func setupTestResolver(t *testing.T) (*Resolver, *store.Memory) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := store.NewMemory()
	return NewResolver(st, auth.NewTokenIssuer("test-secret"), auth.NewPasswords(4), logger), st
}

// signUp registers a user and returns a context authenticated as them.
func signUp(t *testing.T, r *Resolver, email string) (context.Context, *models.User) {
	t.Helper()
	session, err := r.Mutation().SignUp(context.Background(), model.SignUpInput{
		Email:    email,
		Password: "password",
		Name:     email,
	})
	require.NoError(t, err)

	user, err := r.Store.FindUserByID(context.Background(), session.User.ID)
	require.NoError(t, err)
	return WithUser(context.Background(), user), user
}

func TestProtectedOperationsRequireIdentity(t *testing.T) {
	r, _ := setupTestResolver(t)
	ctx := context.Background()
	id := uuid.NewString()

	tests := []struct {
		name string
		call func() error
	}{
		{"myTaskLists", func() error { _, err := r.Query().MyTaskLists(ctx); return err }},
		{"getTaskList", func() error { _, err := r.Query().GetTaskList(ctx, id); return err }},
		{"createTaskList", func() error { _, err := r.Mutation().CreateTaskList(ctx, "x"); return err }},
		{"updateTaskList", func() error { _, err := r.Mutation().UpdateTaskList(ctx, id, "x"); return err }},
		{"deleteTaskList", func() error { _, err := r.Mutation().DeleteTaskList(ctx, id); return err }},
		{"addUserToTaskList", func() error { _, err := r.Mutation().AddUserToTaskList(ctx, id, id); return err }},
		{"createToDo", func() error { _, err := r.Mutation().CreateToDo(ctx, "x", id); return err }},
		{"updateToDo", func() error { _, err := r.Mutation().UpdateToDo(ctx, id, nil, true); return err }},
		{"deleteToDo", func() error { _, err := r.Mutation().DeleteToDo(ctx, id); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrUnauthenticated)
		})
	}
}

func TestUnauthenticatedCallsHaveNoSideEffects(t *testing.T) {
	r, st := setupTestResolver(t)
	ctx, user := signUp(t, r, "owner@example.com")
	list, err := r.Mutation().CreateTaskList(ctx, "Keep")
	require.NoError(t, err)

	_, err = r.Mutation().DeleteTaskList(context.Background(), list.ID.String())
	require.ErrorIs(t, err, ErrUnauthenticated)

	lists, err := st.ListTaskListsForMember(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}

func TestSignUp(t *testing.T) {
	r, _ := setupTestResolver(t)
	avatar := "https://cdn.example.com/a.png"

	session, err := r.Mutation().SignUp(context.Background(), model.SignUpInput{
		Email:    "ada@example.com",
		Password: "password",
		Name:     "Ada",
		Avatar:   &avatar,
	})
	require.NoError(t, err)

	assert.Empty(t, session.User.PasswordHash, "payload must not expose the hash")
	assert.Equal(t, "Ada", session.User.Name)
	require.NotNil(t, session.User.Avatar)
	assert.Equal(t, avatar, *session.User.Avatar)

	sub, err := r.Tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID.String(), sub)

	stored, err := r.Store.FindUserByID(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password", stored.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := r.Mutation().SignUp(context.Background(), model.SignUpInput{
			Email: "ada@example.com", Password: "other", Name: "Imposter",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestSignIn(t *testing.T) {
	r, _ := setupTestResolver(t)
	_, user := signUp(t, r, "ada@example.com")
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := r.Mutation().SignIn(ctx, model.SignInInput{Email: "ada@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := r.Mutation().SignIn(ctx, model.SignInInput{Email: "bob@example.com", Password: "password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("correct credentials", func(t *testing.T) {
		session, err := r.Mutation().SignIn(ctx, model.SignInInput{Email: "ada@example.com", Password: "password"})
		require.NoError(t, err)
		assert.Empty(t, session.User.PasswordHash)

		sub, err := r.Tokens.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), sub)

		expired := r.Tokens.WithClock(func() time.Time { return time.Now().Add(auth.TokenTTL + time.Hour) })
		_, err = expired.Verify(session.Token)
		assert.Error(t, err)
	})
}

func TestCreateTaskList(t *testing.T) {
	r, _ := setupTestResolver(t)
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	r.Now = func() time.Time { return now }

	adaCtx, ada := signUp(t, r, "ada@example.com")
	bobCtx, bob := signUp(t, r, "bob@example.com")

	first, err := r.Mutation().CreateTaskList(adaCtx, "Ada's list")
	require.NoError(t, err)
	second, err := r.Mutation().CreateTaskList(bobCtx, "Bob's list")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []uuid.UUID{ada.ID}, first.UserIDs())
	assert.Equal(t, []uuid.UUID{bob.ID}, second.UserIDs())

	createdAt, err := r.TaskList().CreatedAt(adaCtx, first)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T09:30:00.000Z", createdAt)

	mine, err := r.Query().MyTaskLists(adaCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestGetTaskList(t *testing.T) {
	r, _ := setupTestResolver(t)
	ownerCtx, _ := signUp(t, r, "owner@example.com")
	strangerCtx, _ := signUp(t, r, "stranger@example.com")

	list, err := r.Mutation().CreateTaskList(ownerCtx, "Private")
	require.NoError(t, err)

	t.Run("member", func(t *testing.T) {
		got, err := r.Query().GetTaskList(ownerCtx, list.ID.String())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Private", got.Title)
	})

	t.Run("non-member", func(t *testing.T) {
		got, err := r.Query().GetTaskList(strangerCtx, list.ID.String())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := r.Query().GetTaskList(ownerCtx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := r.Query().GetTaskList(ownerCtx, "not-an-id")
		var gqlErr *Error
		require.ErrorAs(t, err, &gqlErr)
		assert.Equal(t, CodeBadUserInput, gqlErr.Code)
	})
}

func TestUpdateTaskList(t *testing.T) {
	r, _ := setupTestResolver(t)
	ctx, _ := signUp(t, r, "ada@example.com")
	list, err := r.Mutation().CreateTaskList(ctx, "Before")
	require.NoError(t, err)

	got, err := r.Mutation().UpdateTaskList(ctx, list.ID.String(), "After")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, list.UserIDs(), got.UserIDs())

	missing, err := r.Mutation().UpdateTaskList(ctx, uuid.NewString(), "After")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddUserToTaskList(t *testing.T) {
	r, _ := setupTestResolver(t)
	ownerCtx, owner := signUp(t, r, "owner@example.com")
	_, guest := signUp(t, r, "guest@example.com")

	list, err := r.Mutation().CreateTaskList(ownerCtx, "Shared")
	require.NoError(t, err)

	got, err := r.Mutation().AddUserToTaskList(ownerCtx, list.ID.String(), guest.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{owner.ID, guest.ID}, got.UserIDs())

	_, err = r.Mutation().AddUserToTaskList(ownerCtx, list.ID.String(), guest.ID.String())
	assert.ErrorIs(t, err, ErrAlreadyMember)

	missing, err := r.Mutation().AddUserToTaskList(ownerCtx, uuid.NewString(), guest.ID.String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteTaskListOrphansToDos(t *testing.T) {
	r, st := setupTestResolver(t)
	ctx, _ := signUp(t, r, "ada@example.com")

	list, err := r.Mutation().CreateTaskList(ctx, "Doomed")
	require.NoError(t, err)
	todo, err := r.Mutation().CreateToDo(ctx, "Survive", list.ID.String())
	require.NoError(t, err)

	ok, err := r.Mutation().DeleteTaskList(ctx, list.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)

	orphan, err := st.FindToDo(ctx, todo.ID)
	require.NoError(t, err)

	owner, err := r.ToDo().TaskList(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, owner)

	t.Run("deleting again still reports success", func(t *testing.T) {
		ok, err := r.Mutation().DeleteTaskList(ctx, list.ID.String())
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestToDoLifecycle(t *testing.T) {
	r, st := setupTestResolver(t)
	ctx, _ := signUp(t, r, "ada@example.com")
	list, err := r.Mutation().CreateTaskList(ctx, "Chores")
	require.NoError(t, err)

	todo, err := r.Mutation().CreateToDo(ctx, "Laundry", list.ID.String())
	require.NoError(t, err)
	assert.False(t, todo.IsCompleted)
	assert.Equal(t, list.ID, todo.TaskListID)

	t.Run("list existence is not checked", func(t *testing.T) {
		_, err := r.Mutation().CreateToDo(ctx, "Nowhere", uuid.NewString())
		assert.NoError(t, err)
	})

	t.Run("update completion only", func(t *testing.T) {
		got, err := r.Mutation().UpdateToDo(ctx, todo.ID.String(), nil, true)
		require.NoError(t, err)
		assert.Equal(t, "Laundry", got.Content)
		assert.True(t, got.IsCompleted)
	})

	t.Run("update content", func(t *testing.T) {
		content := "Fold laundry"
		got, err := r.Mutation().UpdateToDo(ctx, todo.ID.String(), &content, false)
		require.NoError(t, err)
		assert.Equal(t, "Fold laundry", got.Content)
		assert.False(t, got.IsCompleted)
	})

	t.Run("update missing", func(t *testing.T) {
		got, err := r.Mutation().UpdateToDo(ctx, uuid.NewString(), nil, true)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := r.Mutation().DeleteToDo(ctx, todo.ID.String())
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = st.FindToDo(ctx, todo.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		ok, err = r.Mutation().DeleteToDo(ctx, todo.ID.String())
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
