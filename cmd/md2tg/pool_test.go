package main

import (
	"bytes"
	"errors"
	"runtime"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	auto := max(1, min(runtime.GOMAXPROCS(0), autoWorkersCap))

	tests := []struct {
		name       string
		flag, env  int
		wantWorker int
	}{
		{"flag wins", 3, 7, 3},
		{"env when no flag", 0, 7, 7},
		{"env is capped", 0, MaxWorkers + 10, MaxWorkers},
		{"auto", 0, 0, auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolvePoolSize(tt.flag, tt.env); got != tt.wantWorker {
				t.Errorf("resolvePoolSize(%d, %d) = %d, want %d", tt.flag, tt.env, got, tt.wantWorker)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, MaxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want %v", n, err, ErrInvalidWorkerCount)
		}
	}
}

func TestConfigureMaxProcs_Quiet(t *testing.T) {
	var buf bytes.Buffer
	configureMaxProcs(false, &buf)
	if buf.Len() != 0 {
		t.Errorf("non-verbose maxprocs logged %q", buf.String())
	}
}
