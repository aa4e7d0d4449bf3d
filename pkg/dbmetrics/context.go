package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor кладет executor (обычно транзакцию) в контекст.
// Используется transaction manager'ами, чтобы репозитории прозрачно
// работали внутри транзакции.
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, exec)
}

// GetExecutor возвращает executor из контекста, либо fallback.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(ctxKey{}).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction проверяет, выполняется ли запрос внутри транзакции.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(DBExecutor)
	return ok
}
