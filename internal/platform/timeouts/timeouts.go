// Package timeouts defines shared timeout constants used across processes.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the worker health server.
const GRPCDial = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOperation bounds one background store call made outside a request.
const StoreOperation = 10 * time.Second

// TelemetryFlush bounds the final span export when a process exits.
const TelemetryFlush = 3 * time.Second
