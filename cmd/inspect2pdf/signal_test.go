package main

import (
	"context"
	"testing"
)

// Signal delivery itself is not exercised; it is asynchronous and
// platform-specific.
func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts live and stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatal("context should not be cancelled initially")
		}
		stop()
		<-ctx.Done()
	})

	t.Run("inherits parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
	})
}
