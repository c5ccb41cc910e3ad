package main

import (
	"fmt"
	"io"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"
)

// MaxWorkers bounds --workers and MD2TG_WORKERS.
const MaxWorkers = 64

// autoWorkersCap bounds the automatic worker count.
const autoWorkersCap = 16

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
// Its log goes to w only when verbose.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, w io.Writer) {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > environment > GOMAXPROCS.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	return max(1, min(n, autoWorkersCap))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
