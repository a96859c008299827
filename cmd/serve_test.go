package cmd

import (
	"context"
	"testing"
	"time"
)

func TestServeShutsDownOnCancel(t *testing.T) {
	setupTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeReportsListenError(t *testing.T) {
	setupTestEnv(t)

	err := runServe(context.Background(), "256.0.0.1:bad")
	if err == nil {
		t.Fatal("expected a listen error")
	}
}
