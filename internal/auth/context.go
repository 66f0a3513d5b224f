package auth

import "context"

// User is the caller identity decoded from a verified bearer token.
type User struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	PermissionLevel Permission
}

type userKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}
