package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/basit/tasklist-backend/models"
)

// Memory keeps everything in process. It backs `serve --in-memory` and
// the resolver tests.
type Memory struct {
	mu    sync.RWMutex
	seq   int64
	users map[uuid.UUID]memUser
	lists map[uuid.UUID]memList
	todos map[uuid.UUID]memToDo
}

type memUser struct {
	seq  int64
	user models.User
}

type memList struct {
	seq  int64
	list models.TaskList
}

type memToDo struct {
	seq  int64
	todo models.ToDo
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[uuid.UUID]memUser),
		lists: make(map[uuid.UUID]memList),
		todos: make(map[uuid.UUID]memToDo),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) next() int64 {
	m.seq++
	return m.seq
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.user.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = memUser{seq: m.next(), user: copyUser(user)}
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := copyUser(&u.user)
	return &user, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.user.Email == email {
			user := copyUser(&u.user)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateTaskList(_ context.Context, list *models.TaskList) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now()
	}
	for i := range list.Members {
		list.Members[i].TaskListID = list.ID
		if list.Members[i].JoinedAt.IsZero() {
			list.Members[i].JoinedAt = list.CreatedAt
		}
	}
	m.lists[list.ID] = memList{seq: m.next(), list: copyTaskList(list)}
	return nil
}

func (m *Memory) FindTaskList(_ context.Context, id uuid.UUID) (*models.TaskList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[id]
	if !ok {
		return nil, ErrNotFound
	}
	list := copyTaskList(&l.list)
	return &list, nil
}

func (m *Memory) ListTaskListsForMember(_ context.Context, userID uuid.UUID) ([]*models.TaskList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []memList
	for _, l := range m.lists {
		if l.list.HasMember(userID) {
			found = append(found, l)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	lists := make([]*models.TaskList, 0, len(found))
	for _, l := range found {
		list := copyTaskList(&l.list)
		lists = append(lists, &list)
	}
	return lists, nil
}

func (m *Memory) UpdateTaskListTitle(_ context.Context, id uuid.UUID, title string) (*models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[id]
	if !ok {
		return nil, ErrNotFound
	}
	l.list.Title = title
	m.lists[id] = l

	list := copyTaskList(&l.list)
	return &list, nil
}

func (m *Memory) AddTaskListMember(_ context.Context, listID, userID uuid.UUID) (*models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[listID]
	if !ok {
		return nil, ErrNotFound
	}
	if l.list.HasMember(userID) {
		return nil, ErrAlreadyMember
	}
	l.list.Members = append(l.list.Members, models.TaskListMember{
		TaskListID: listID,
		UserID:     userID,
		JoinedAt:   time.Now(),
	})
	m.lists[listID] = l

	list := copyTaskList(&l.list)
	return &list, nil
}

func (m *Memory) DeleteTaskList(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.lists, id)
	return nil
}

func (m *Memory) CreateToDo(_ context.Context, todo *models.ToDo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	m.todos[todo.ID] = memToDo{seq: m.next(), todo: *todo}
	return nil
}

func (m *Memory) FindToDo(_ context.Context, id uuid.UUID) (*models.ToDo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	todo := t.todo
	return &todo, nil
}

func (m *Memory) ListToDosByTaskList(_ context.Context, listID uuid.UUID) ([]*models.ToDo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []memToDo
	for _, t := range m.todos {
		if t.todo.TaskListID == listID {
			found = append(found, t)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	todos := make([]*models.ToDo, 0, len(found))
	for _, t := range found {
		todo := t.todo
		todos = append(todos, &todo)
	}
	return todos, nil
}

func (m *Memory) UpdateToDo(_ context.Context, id uuid.UUID, patch models.ToDoPatch) (*models.ToDo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Content != nil {
		t.todo.Content = *patch.Content
	}
	t.todo.IsCompleted = patch.IsCompleted
	m.todos[id] = t

	todo := t.todo
	return &todo, nil
}

func (m *Memory) DeleteToDo(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.todos, id)
	return nil
}

func (m *Memory) DeleteOrphanToDos(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, t := range m.todos {
		if _, ok := m.lists[t.todo.TaskListID]; !ok {
			delete(m.todos, id)
			n++
		}
	}
	return n, nil
}

func copyUser(u *models.User) models.User {
	c := *u
	if u.Avatar != nil {
		avatar := *u.Avatar
		c.Avatar = &avatar
	}
	return c
}

func copyTaskList(l *models.TaskList) models.TaskList {
	c := *l
	c.Members = append([]models.TaskListMember(nil), l.Members...)
	return c
}
