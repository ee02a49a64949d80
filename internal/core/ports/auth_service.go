package ports

import "context"

// RegisterInput carries the data required to create an account.
// CurrentRole is optional; when empty it defaults to MainRole.
type RegisterInput struct {
	FullName    string
	Document    string
	Email       string
	Password    string
	MainRole    string
	CurrentRole string
}

// AuthService handles login and registration. Neither operation requires a
// prior identity; login is the only way to obtain a token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) error
}
