package resolvers

import (
	"fmt"

	"github.com/google/uuid"
)

// Error is a client-facing failure. Extensions feed the "extensions"
// member of the GraphQL error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeConflict           = "CONFLICT"
	CodeBadUserInput       = "BAD_USER_INPUT"
)

var (
	ErrUnauthenticated    = &Error{Code: CodeUnauthenticated, Message: "Unauthenticated. Please sign in."}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "Invalid credentials!"}
	ErrAlreadyMember      = &Error{Code: CodeConflict, Message: "User is already part of the task list"}
	ErrEmailTaken         = &Error{Code: CodeConflict, Message: "Email is already registered"}
)

// parseID normalizes an external identifier to a UUID.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &Error{Code: CodeBadUserInput, Message: fmt.Sprintf("invalid %s %q", field, raw)}
	}
	return id, nil
}
