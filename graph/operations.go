package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/basit/tasklist-backend/graph/model"
)

func (s *Schema) resolveMyTaskLists(p graphql.ResolveParams) (interface{}, error) {
	return s.root.Query().MyTaskLists(p.Context)
}

func (s *Schema) resolveGetTaskList(p graphql.ResolveParams) (interface{}, error) {
	list, err := s.root.Query().GetTaskList(p.Context, p.Args["id"].(string))
	return nullable(list, err)
}

func (s *Schema) defineMutationType(taskListType, toDoType, authUserType *graphql.Object) *graphql.Object {
	signUpInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"avatar":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	signInInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignInInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	nonNullID := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	nonNullString := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: graphql.NewNonNull(authUserType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signUpInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					return s.root.Mutation().SignUp(p.Context, model.SignUpInput{
						Email:    in["email"].(string),
						Password: in["password"].(string),
						Name:     in["name"].(string),
						Avatar:   optionalString(in, "avatar"),
					})
				},
			},
			"signIn": &graphql.Field{
				Type: graphql.NewNonNull(authUserType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signInInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					return s.root.Mutation().SignIn(p.Context, model.SignInInput{
						Email:    in["email"].(string),
						Password: in["password"].(string),
					})
				},
			},
			"createTaskList": &graphql.Field{
				Type: graphql.NewNonNull(taskListType),
				Args: graphql.FieldConfigArgument{"title": nonNullString},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.Mutation().CreateTaskList(p.Context, p.Args["title"].(string))
				},
			},
			"updateTaskList": &graphql.Field{
				Type: taskListType,
				Args: graphql.FieldConfigArgument{"id": nonNullID, "title": nonNullString},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := s.root.Mutation().UpdateTaskList(p.Context, p.Args["id"].(string), p.Args["title"].(string))
					return nullable(list, err)
				},
			},
			"deleteTaskList": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{"id": nonNullID},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.Mutation().DeleteTaskList(p.Context, p.Args["id"].(string))
				},
			},
			"addUserToTaskList": &graphql.Field{
				Type: taskListType,
				Args: graphql.FieldConfigArgument{"taskListId": nonNullID, "userId": nonNullID},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := s.root.Mutation().AddUserToTaskList(p.Context, p.Args["taskListId"].(string), p.Args["userId"].(string))
					return nullable(list, err)
				},
			},
			"createToDo": &graphql.Field{
				Type: graphql.NewNonNull(toDoType),
				Args: graphql.FieldConfigArgument{"content": nonNullString, "taskListId": nonNullID},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.Mutation().CreateToDo(p.Context, p.Args["content"].(string), p.Args["taskListId"].(string))
				},
			},
			"updateToDo": &graphql.Field{
				Type: toDoType,
				Args: graphql.FieldConfigArgument{
					"id":          nonNullID,
					"content":     &graphql.ArgumentConfig{Type: graphql.String},
					"isCompleted": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					todo, err := s.root.Mutation().UpdateToDo(
						p.Context,
						p.Args["id"].(string),
						optionalString(p.Args, "content"),
						p.Args["isCompleted"].(bool),
					)
					return nullable(todo, err)
				},
			},
			"deleteToDo": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{"id": nonNullID},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.root.Mutation().DeleteToDo(p.Context, p.Args["id"].(string))
				},
			},
		},
	})
}

func optionalString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}
