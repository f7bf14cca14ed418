package model

import (
	"net"
	"strings"
)

// PageLocation is the address a verification page was requested at.
type PageLocation struct {
	Scheme string // "http" or "https"
	Host   string // host with optional port, as sent by the client
	Path   string
}

// Hostname returns Host without its port.
func (l PageLocation) Hostname() string {
	if host, _, err := net.SplitHostPort(l.Host); err == nil {
		return strings.Trim(host, "[]")
	}
	return l.Host
}

// Origin returns scheme://host.
func (l PageLocation) Origin() string {
	return l.Scheme + "://" + l.Host
}
