package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	// SeedAdmin creates the bootstrap administrator unless the username is taken.
	SeedAdmin(ctx context.Context, username, password string) error
}
