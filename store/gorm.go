package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/basit/tasklist-backend/models"
)

// Gorm is the postgres-backed Store. The *gorm.DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

var _ Store = (*Gorm)(nil)

func orderedMembers(db *gorm.DB) *gorm.DB {
	return db.Order("joined_at, user_id")
}

func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Gorm) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Gorm) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Gorm) CreateTaskList(ctx context.Context, list *models.TaskList) error {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}
	return nil
}

func (s *Gorm) FindTaskList(ctx context.Context, id uuid.UUID) (*models.TaskList, error) {
	var list models.TaskList
	err := s.db.WithContext(ctx).
		Preload("Members", orderedMembers).
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &list, nil
}

func (s *Gorm) ListTaskListsForMember(ctx context.Context, userID uuid.UUID) ([]*models.TaskList, error) {
	var lists []*models.TaskList
	memberOf := s.db.Model(&models.TaskListMember{}).Select("task_list_id").Where("user_id = ?", userID)

	err := s.db.WithContext(ctx).
		Preload("Members", orderedMembers).
		Where("id IN (?)", memberOf).
		Order("created_at").
		Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	return lists, nil
}

func (s *Gorm) UpdateTaskListTitle(ctx context.Context, id uuid.UUID, title string) (*models.TaskList, error) {
	res := s.db.WithContext(ctx).
		Model(&models.TaskList{}).
		Where("id = ?", id).
		Update("title", title)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update task list: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindTaskList(ctx, id)
}

func (s *Gorm) AddTaskListMember(ctx context.Context, listID, userID uuid.UUID) (*models.TaskList, error) {
	member := models.TaskListMember{TaskListID: listID, UserID: userID}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to add member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyMember
	}
	return s.FindTaskList(ctx, listID)
}

func (s *Gorm) DeleteTaskList(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.TaskList{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

func (s *Gorm) CreateToDo(ctx context.Context, todo *models.ToDo) error {
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (s *Gorm) FindToDo(ctx context.Context, id uuid.UUID) (*models.ToDo, error) {
	var todo models.ToDo
	if err := s.db.WithContext(ctx).First(&todo, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &todo, nil
}

func (s *Gorm) ListToDosByTaskList(ctx context.Context, listID uuid.UUID) ([]*models.ToDo, error) {
	var todos []*models.ToDo
	if err := s.db.WithContext(ctx).Where("task_list_id = ?", listID).Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *Gorm) UpdateToDo(ctx context.Context, id uuid.UUID, patch models.ToDoPatch) (*models.ToDo, error) {
	updates := map[string]interface{}{
		"is_completed": patch.IsCompleted,
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}

	res := s.db.WithContext(ctx).Model(&models.ToDo{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindToDo(ctx, id)
}

func (s *Gorm) DeleteToDo(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.ToDo{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteOrphanToDos(ctx context.Context) (int64, error) {
	lists := s.db.Model(&models.TaskList{}).Select("id")
	res := s.db.WithContext(ctx).Where("task_list_id NOT IN (?)", lists).Delete(&models.ToDo{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete orphan todos: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
