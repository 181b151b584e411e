package fnerrors

import "fmt"

// InvalidEventError is returned when an event carries an upstream error under the "err" key.
type InvalidEventError struct {
	Message string
}

func NewInvalidEventError(message string) error {
	return &InvalidEventError{Message: message}
}

func (e *InvalidEventError) Error() string {
	return e.Message
}

type DecodeError struct {
	Offset int
}

func NewDecodeError(offset int) error {
	return &DecodeError{Offset: offset}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("event bytes are not valid utf-8: invalid sequence at offset %d", e.Offset)
}

// ExternalModelError wraps any failure raised while loading or querying the interpreter.
type ExternalModelError struct {
	Op  string
	Err error
}

func NewExternalModelError(op string, err error) error {
	return &ExternalModelError{Op: op, Err: err}
}

func (e *ExternalModelError) Error() string {
	return fmt.Sprintf("interpreter %s failed: %v", e.Op, e.Err)
}

func (e *ExternalModelError) Unwrap() error {
	return e.Err
}

// Model store errors
type ModelLoadError struct {
	Path   string
	Reason string
}

func NewModelLoadError(path, reason string) error {
	return &ModelLoadError{Path: path, Reason: reason}
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model from %s: reason = %s", e.Path, e.Reason)
}

type TimeoutError struct {
	Endpoint string
}

func NewTimeoutError(endpoint string) error {
	return &TimeoutError{Endpoint: endpoint}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out for nlu server %s", e.Endpoint)
}

type ConnectionError struct {
	Endpoint string
}

func NewConnectionError(endpoint string) error {
	return &ConnectionError{Endpoint: endpoint}
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to nlu server %s", e.Endpoint)
}

type ServerInvocationError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func NewServerInvocationError(endpoint string, status int, body string) error {
	return &ServerInvocationError{Endpoint: endpoint, StatusCode: status, Body: body}
}

func (e *ServerInvocationError) Error() string {
	return fmt.Sprintf("nlu server %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Health check error
type HealthCheckFailedError struct {
	Endpoint string
	Reason   string
}

func NewHealthCheckFailedError(endpoint string, reason string) error {
	return &HealthCheckFailedError{Endpoint: endpoint, Reason: reason}
}

func (e *HealthCheckFailedError) Error() string {
	return fmt.Sprintf("health check failed for %s: reason = %s", e.Endpoint, e.Reason)
}

// Runtime errors
type RuntimeConfigError struct {
	Reason string
}

func (e *RuntimeConfigError) Error() string {
	return fmt.Sprintf("invalid runtime config: reason = %s", e.Reason)
}

func NewRuntimeConfigError(reason string) error {
	return &RuntimeConfigError{Reason: reason}
}
