// Package discovery centralizes the listen-address conventions of the
// spice-loop processes.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceWeb is the storefront and back office HTTP service identity.
	ServiceWeb = "web"
	// ServiceWorker is the background worker gRPC health identity.
	ServiceWorker = "worker"
)

var ports = map[string]int{
	ServiceWeb:    8080,
	ServiceWorker: 8089,
}

// DefaultPort returns the conventional port for a service, or 0 when the
// service is unknown.
func DefaultPort(service string) int {
	return ports[strings.TrimSpace(service)]
}

// DefaultListenAddr returns ":<port>" for a known service.
func DefaultListenAddr(service string) string {
	port := DefaultPort(service)
	if port <= 0 {
		return ""
	}
	return ":" + strconv.Itoa(port)
}

// OrDefaultListenAddr returns value when set, otherwise the service convention.
func OrDefaultListenAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultListenAddr(service)
}
