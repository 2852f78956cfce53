// Package logger provides adapters for popular logger libraries to work with
// lazybtree's Logger interface.
//
// The standard library's *slog.Logger already implements lazybtree.Logger and
// needs no adapter.
//
// Example with zap:
//
//	zapLogger, _ := zap.NewProduction()
//	tree := lazybtree.New[int, string](64, lazybtree.WithLogger(logger.NewZap(zapLogger)))
package logger
