// Package user holds the user record and the request payloads of the
// user endpoints.
package user

import (
	"fmt"

	"github.com/deppfellow/user-service/internal/validation"
)

// NamePrefix is the label synthesized names start with ("User" in Ukrainian).
const NamePrefix = "Користувач"

// User is the JSON record both endpoints return.
//
// It only lives for the duration of one response.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Synthesize builds the placeholder record for an id: {id, "Користувач <id>"}.
func Synthesize(id int64) User {
	return User{
		ID:   id,
		Name: fmt.Sprintf("%s %d", NamePrefix, id),
	}
}

// Samples returns the fixed list served by GET /users.
//
// A new slice is built on every call, so callers may modify it freely.
func Samples() []User {
	return []User{
		{ID: 1, Name: "Іван"},
		{ID: 2, Name: "Марія"},
	}
}

// ListUsersRequest is the (empty) payload of GET /users.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

// GetUserRequest is the payload of GET /users/:id.
//
// ID is bound from the path by Echo; Validate parses it into userID.
type GetUserRequest struct {
	ID string `param:"id" json:"-"`

	userID int64
}

// Validate checks the raw id and keeps the parsed value.
//
// The id follows the leading-integer rule of validation.ParseUserID.
// Anything without a leading digit run is reported as "invalid id".
func (r *GetUserRequest) Validate() error {
	id, err := validation.ParseUserID(r.ID)
	if err != nil {
		return validation.CustomValidationErrors{
			{Field: "id", Message: err.Error()},
		}
	}

	r.userID = id
	return nil
}

// UserID returns the id parsed by Validate.
func (r *GetUserRequest) UserID() int64 {
	return r.userID
}
