package ports

import "context"

// RegisterInput carries the fields of a new portal account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthGateway issues session tokens. The portal backend owns credentials.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
}
