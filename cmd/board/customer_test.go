package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_QuitEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prompt(ctx, cancel, nil, strings.NewReader("\n\nquit\nbell\n"))

	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestPrompt_EndOfInputEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prompt(ctx, cancel, nil, strings.NewReader(""))

	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestCommand_RejectsBadInput(t *testing.T) {
	ctx := context.Background()

	assert.ErrorContains(t, command(ctx, nil, "dance", nil), "unknown command")
	assert.ErrorContains(t, command(ctx, nil, "add", nil), "usage: add")
	assert.ErrorContains(t, command(ctx, nil, "add", []string{"burger", "many"}), "quantity must be a number")
	assert.ErrorContains(t, command(ctx, nil, "order", nil), "usage: order")
}
