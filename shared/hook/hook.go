// Package hook runs side effects that follow a committed mutation.
package hook

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Hook is one post-commit side effect. Name only shows up in logs.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Run executes every hook in order. A hook that errors or panics is logged and skipped;
// the mutation that preceded it stays committed and nothing is retried.
// It returns how many hooks failed.
func Run(ctx context.Context, hooks ...Hook) int {
	failed := 0

	for _, h := range hooks {
		if err := run(ctx, h); err != nil {
			failed++

			log.Error().Err(err).Str("hook", h.Name).Msg("post-commit hook failed")
		}
	}

	return failed
}

// Go runs the hooks on a detached context without waiting for them.
func Go(ctx context.Context, hooks ...Hook) {
	detached := context.WithoutCancel(ctx)

	go Run(detached, hooks...)
}

func run(ctx context.Context, h Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if h.Fn == nil {
		return nil
	}

	return h.Fn(ctx)
}
