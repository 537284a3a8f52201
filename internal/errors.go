package internal

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract rejections.
var (
	// ErrAlreadyRecording is returned when Start is called while a recording
	// session is already capturing.
	ErrAlreadyRecording = errors.New("recording already in progress")

	// ErrEmptyTurn is returned when a turn with neither text nor image is
	// submitted. Such a turn must never produce a message.
	ErrEmptyTurn = errors.New("turn has no text and no image")

	// ErrTurnInFlight is returned when a submission arrives while a prior
	// one is still being processed.
	ErrTurnInFlight = errors.New("a turn submission is already in flight")
)

// DeviceError represents a microphone acquisition failure
type DeviceError struct {
	Reason string // "unavailable", "denied"
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device error: %s: %v", e.Reason, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ServiceError represents a failure of one of the AI service calls
type ServiceError struct {
	Service string // "analysis", "title", "transcription"
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error [%s]: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// StoreError represents a conversation store failure
type StoreError struct {
	Op  string // "create", "append", "update", "query"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading or validating configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
