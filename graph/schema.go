// Package graph exposes the resolvers as a GraphQL schema built at
// runtime with graphql-go.
package graph

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/basit/tasklist-backend/graph/model"
	"github.com/basit/tasklist-backend/graph/resolvers"
	"github.com/basit/tasklist-backend/models"
)

// Schema represents the GraphQL schema
type Schema struct {
	schema graphql.Schema
	root   *resolvers.Resolver
	logger logrus.FieldLogger
}

// Request is the body of a GraphQL POST.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewSchema wires every type, query and mutation to root.
func NewSchema(root *resolvers.Resolver, logger logrus.FieldLogger) (*Schema, error) {
	s := &Schema{root: root, logger: logger}

	userType := s.defineUserType()
	taskListType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "TaskList",
		Fields: graphql.Fields{},
	})
	toDoType := s.defineToDoType(taskListType)
	s.addTaskListFields(taskListType, userType, toDoType)
	authUserType := s.defineAuthUserType(userType)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"myTaskLists": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskListType))),
				Resolve: s.resolveMyTaskLists,
			},
			"getTaskList": &graphql.Field{
				Type: taskListType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveGetTaskList,
			},
		},
	})

	mutationType := s.defineMutationType(taskListType, toDoType, authUserType)

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Execute runs one request. The context must already carry the caller's
// identity, if any.
func (s *Schema) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func (s *Schema) defineUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.User().ID(p.Context, p.Source.(*models.User))
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Email, nil
				},
			},
			"avatar": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if avatar := p.Source.(*models.User).Avatar; avatar != nil {
						return *avatar, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func (s *Schema) addTaskListFields(taskListType, userType, toDoType *graphql.Object) {
	taskList := func(p graphql.ResolveParams) *models.TaskList {
		return p.Source.(*models.TaskList)
	}

	taskListType.AddFieldConfig("id", &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.root.TaskList().ID(p.Context, taskList(p))
		},
	})
	taskListType.AddFieldConfig("title", &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return taskList(p).Title, nil
		},
	})
	taskListType.AddFieldConfig("createdAt", &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.root.TaskList().CreatedAt(p.Context, taskList(p))
		},
	})
	taskListType.AddFieldConfig("progress", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Float),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list := taskList(p)
			return async(func() (interface{}, error) {
				return s.root.TaskList().Progress(p.Context, list)
			}), nil
		},
	})
	taskListType.AddFieldConfig("users", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(userType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list := taskList(p)
			return async(func() (interface{}, error) {
				users, err := s.root.TaskList().Users(p.Context, list)
				if err != nil {
					return nil, err
				}
				out := make([]interface{}, len(users))
				for i, u := range users {
					if u != nil {
						out[i] = u
					}
				}
				return out, nil
			}), nil
		},
	})
	taskListType.AddFieldConfig("todos", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(toDoType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list := taskList(p)
			return async(func() (interface{}, error) {
				return s.root.TaskList().Todos(p.Context, list)
			}), nil
		},
	})
}

func (s *Schema) defineToDoType(taskListType *graphql.Object) *graphql.Object {
	todo := func(p graphql.ResolveParams) *models.ToDo {
		return p.Source.(*models.ToDo)
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ToDo",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.ToDo().ID(p.Context, todo(p))
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return todo(p).Content, nil
				},
			},
			"isCompleted": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return todo(p).IsCompleted, nil
				},
			},
			"taskList": &graphql.Field{
				Type: taskListType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					t := todo(p)
					return async(func() (interface{}, error) {
						list, err := s.root.ToDo().TaskList(p.Context, t)
						return nullable(list, err)
					}), nil
				},
			},
		},
	})
}

func (s *Schema) defineAuthUserType(userType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthUser",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.AuthUser).User, nil
				},
			},
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.AuthUser).Token, nil
				},
			},
		},
	})
}

// async starts fn right away and hands the executor a thunk, so sibling
// fields of the same object resolve in parallel.
func async(fn func() (interface{}, error)) func() (interface{}, error) {
	type result struct {
		value interface{}
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	return func() (interface{}, error) {
		r := <-ch
		return r.value, r.err
	}
}

// nullable turns a typed nil pointer into an untyped nil so the executor
// renders null.
func nullable[T any](v *T, err error) (interface{}, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
