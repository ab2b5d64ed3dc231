package resolvers

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/basit/tasklist-backend/graph/model"
	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

// MyTaskLists returns every list the caller is a member of.
func (r *queryResolver) MyTaskLists(ctx context.Context) ([]*models.TaskList, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return r.Store.ListTaskListsForMember(ctx, user.ID)
}

// GetTaskList returns nil both for unknown ids and for lists the caller
// is not a member of.
func (r *queryResolver) GetTaskList(ctx context.Context, id string) (*models.TaskList, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	listID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	list, err := r.Store.FindTaskList(ctx, listID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !list.HasMember(user.ID) {
		r.Logger.WithFields(logrus.Fields{
			"task_list_id": list.ID,
			"user_id":      user.ID,
		}).Debug("Task list read by non-member refused")
		return nil, nil
	}
	return list, nil
}

func (r *mutationResolver) SignUp(ctx context.Context, input model.SignUpInput) (*model.AuthUser, error) {
	hash, err := r.Passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       input.Avatar,
		PasswordHash: hash,
	}
	if err := r.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	r.Logger.WithField("user_id", user.ID).Info("User signed up")
	return r.session(user)
}

func (r *mutationResolver) SignIn(ctx context.Context, input model.SignInInput) (*model.AuthUser, error) {
	user, err := r.Store.FindUserByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !r.Passwords.Compare(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}
	return r.session(user)
}

func (r *mutationResolver) session(user *models.User) (*model.AuthUser, error) {
	token, err := r.Tokens.Issue(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.AuthUser{User: user.Public(), Token: token}, nil
}

func (r *mutationResolver) CreateTaskList(ctx context.Context, title string) (*models.TaskList, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	now := r.Now()
	list := &models.TaskList{
		Title:     title,
		CreatedAt: now,
		Members:   []models.TaskListMember{{UserID: user.ID, JoinedAt: now}},
	}
	if err := r.Store.CreateTaskList(ctx, list); err != nil {
		return nil, err
	}

	r.Logger.WithFields(logrus.Fields{
		"task_list_id": list.ID,
		"user_id":      user.ID,
	}).Info("Task list created")
	return list, nil
}

// UpdateTaskList replaces the title. Any signed-in user may rename a
// list; a missing list yields nil.
func (r *mutationResolver) UpdateTaskList(ctx context.Context, id string, title string) (*models.TaskList, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	listID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	list, err := r.Store.UpdateTaskListTitle(ctx, listID, title)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return list, err
}

// DeleteTaskList does not check existence and leaves the list's to-dos
// in place.
func (r *mutationResolver) DeleteTaskList(ctx context.Context, id string) (bool, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return false, err
	}
	listID, err := parseID("id", id)
	if err != nil {
		return false, err
	}

	if err := r.Store.DeleteTaskList(ctx, listID); err != nil {
		return false, err
	}

	r.Logger.WithFields(logrus.Fields{
		"task_list_id": listID,
		"user_id":      user.ID,
	}).Info("Task list deleted")
	return true, nil
}

func (r *mutationResolver) AddUserToTaskList(ctx context.Context, taskListID string, userID string) (*models.TaskList, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	listID, err := parseID("taskListId", taskListID)
	if err != nil {
		return nil, err
	}
	memberID, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}

	if _, err := r.Store.FindTaskList(ctx, listID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	list, err := r.Store.AddTaskListMember(ctx, listID, memberID)
	switch {
	case errors.Is(err, store.ErrAlreadyMember):
		return nil, ErrAlreadyMember
	case errors.Is(err, store.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}

	r.Logger.WithFields(logrus.Fields{
		"task_list_id": listID,
		"member_id":    memberID,
		"user_id":      user.ID,
	}).Info("User added to task list")
	return list, nil
}

func (r *mutationResolver) CreateToDo(ctx context.Context, content string, taskListID string) (*models.ToDo, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	listID, err := parseID("taskListId", taskListID)
	if err != nil {
		return nil, err
	}

	todo := &models.ToDo{
		Content:     content,
		IsCompleted: false,
		TaskListID:  listID,
	}
	if err := r.Store.CreateToDo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *mutationResolver) UpdateToDo(ctx context.Context, id string, content *string, isCompleted bool) (*models.ToDo, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	todoID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	todo, err := r.Store.UpdateToDo(ctx, todoID, models.ToDoPatch{
		Content:     content,
		IsCompleted: isCompleted,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return todo, err
}

func (r *mutationResolver) DeleteToDo(ctx context.Context, id string) (bool, error) {
	if _, err := requireUser(ctx); err != nil {
		return false, err
	}
	todoID, err := parseID("id", id)
	if err != nil {
		return false, err
	}

	if err := r.Store.DeleteToDo(ctx, todoID); err != nil {
		return false, err
	}
	return true, nil
}
