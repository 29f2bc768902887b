// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the shared message and error types used across the
// hioload-zmq library: multipart messages as they cross the engine boundary,
// and structured errors carrying the failing operation and an error code.
package api
