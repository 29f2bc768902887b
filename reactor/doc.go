// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor bridges the readiness-based sockets of the native
// messaging engine into channel-based Go code. A single polling goroutine
// owns every registered raw socket: it multiplexes them through zmq_poll,
// flushes pending sends when a socket turns writable, and pushes inbound
// multipart messages onto per-socket delivery channels. Raw sockets are not
// safe for concurrent use, so all access after registration happens on the
// polling goroutine; callers interact only through Handle, which forwards
// work as commands over a channel and wakes the poller through an inproc
// PAIR socket.
package reactor
