package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures with errors.Is.
var (
	ErrConfig      = errors.New("clickhouse: configuration error")
	ErrTransport   = errors.New("clickhouse: transport error")
	ErrDatabase    = errors.New("clickhouse: database error")
	ErrDeserialize = errors.New("clickhouse: deserialization error")
)

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	// Key is the environment variable or field that failed.
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("clickhouse: invalid configuration: %s %s", e.Key, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// TransportError reports a request that failed before a response was
// received, or whose body could not be read.
type TransportError struct {
	Query string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("clickhouse: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DatabaseError is a non-2xx response from the server.
type DatabaseError struct {
	// Message is the response body as sent by the server.
	Message    string
	Query      string
	StatusCode int
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("clickhouse: database error (status %d): %s", e.StatusCode, e.Message)
}

// Is reports whether target is ErrDatabase.
func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

// DeserializeError reports a successful response whose body does not
// decode into the requested row type.
type DeserializeError struct {
	Err error
	// Type is the Go type rows were decoded into.
	Type  string
	Body  string
	Query string
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("clickhouse: cannot decode response into []%s: %v", e.Type, e.Err)
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDeserialize.
func (e *DeserializeError) Is(target error) bool {
	return target == ErrDeserialize
}
