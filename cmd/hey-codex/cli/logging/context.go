package logging

import (
	"context"
)

// Context keys for logging values.
type contextKey int

const (
	sessionKeyKey contextKey = iota
	invocationIDKey
	componentKey
	agentKey
	hookKey
)

// WithSessionKey adds the edit-session key to the context.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyKey, key)
}

// WithInvocation adds a per-process invocation ID to the context.
func WithInvocation(ctx context.Context, invocationID string) context.Context {
	return context.WithValue(ctx, invocationIDKey, invocationID)
}

// WithComponent adds a component name to the context (e.g. "hooks", "edittrack").
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithAgent adds the host agent name to the context (e.g. "claude-code").
func WithAgent(ctx context.Context, agent string) context.Context {
	return context.WithValue(ctx, agentKey, agent)
}

// WithHook adds the hook verb to the context.
func WithHook(ctx context.Context, hook string) context.Context {
	return context.WithValue(ctx, hookKey, hook)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if s, ok := ctx.Value(key).(string); ok {
		return s
	}
	return ""
}

// SessionKeyFromContext returns the session key, or "" if unset.
func SessionKeyFromContext(ctx context.Context) string {
	return stringFromContext(ctx, sessionKeyKey)
}

// InvocationIDFromContext returns the invocation ID, or "" if unset.
func InvocationIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, invocationIDKey)
}

// ComponentFromContext returns the component name, or "" if unset.
func ComponentFromContext(ctx context.Context) string {
	return stringFromContext(ctx, componentKey)
}

// AgentFromContext returns the agent name, or "" if unset.
func AgentFromContext(ctx context.Context) string {
	return stringFromContext(ctx, agentKey)
}

// HookFromContext returns the hook verb, or "" if unset.
func HookFromContext(ctx context.Context) string {
	return stringFromContext(ctx, hookKey)
}
