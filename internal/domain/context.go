package domain

import "context"

type contextKey string

const memberContextKey contextKey = "member"

// ContextWithMember returns a context carrying the authenticated member.
func ContextWithMember(ctx context.Context, m *Member) context.Context {
	return context.WithValue(ctx, memberContextKey, m)
}

// MemberFromContext extracts the authenticated member from context.
func MemberFromContext(ctx context.Context) (*Member, bool) {
	m, ok := ctx.Value(memberContextKey).(*Member)
	return m, ok
}
