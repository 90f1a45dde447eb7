package middleware

import "context"

const principalCtxKey = contextKey("principal")

// Principal is the authenticated caller: a user ID, a staff flag, and the
// journalist record the user acts as, if any. Review and processing actions
// attribute to the user ID; link submissions and withdrawal requests
// attribute to the journalist ID.
type Principal struct {
	UserID       string
	IsStaff      bool
	JournalistID *string
}

// GetPrincipalFromCtx retrieves the authenticated principal from the request
// context. The second return value reports whether one was present.
func GetPrincipalFromCtx(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey).(Principal)
	return principal, ok
}
