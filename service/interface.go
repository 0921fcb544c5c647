package service

import (
	"errors"
	"fmt"
)

// Worker is a supervised long-running loop
//
// Lifecycle:
//  1. Construction (via the controller's builder, once per generation)
//  2. Run() - loops until a shutdown command or a failure
//  3. Terminal result inspected by the controller; workers never self-restart
type Worker interface {
	// Name returns the identifier used in logs and errors
	Name() string

	// Run owns the worker's loop and returns its terminal result
	// Must hang up the worker's mailboxes before returning
	Run() error
}

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources outside worker supervision: audio backend, metrics endpoint, file watcher
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Start() - launch background goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// StartAll starts services in order, stopping the started ones on failure
func StartAll(services ...Service) error {
	for i, s := range services {
		if err := s.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = services[j].Stop()
			}
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
	}
	return nil
}

// StopAll stops services in reverse order and joins their errors
func StopAll(services ...Service) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", services[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
