package main

import (
	"testing"

	"delicious/internal/config"
	"delicious/internal/logger"
)

func TestNewClientSharedWithinInvocation(t *testing.T) {
	cfg = &config.Config{Throttle: config.Throttle{Interval: "1s"}}
	log = logger.New(logger.ERROR)
	flagUsername = "user"
	flagPassword = "secret"
	sharedClient = nil
	t.Cleanup(func() {
		cfg = nil
		log = nil
		flagUsername, flagPassword = "", ""
		sharedClient = nil
	})

	first, err := newClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected repeated calls to return the same client")
	}
}
