package application

import (
	"regexp"
	"strings"

	"github.com/cbitosc/verify25/internal/domain/model"
)

const (
	// DefaultProductionBaseURL is where published verification pages live.
	DefaultProductionBaseURL = "https://cbitosc.github.io/verify25"

	// DefaultEventName is used when the page path names no hfest event.
	DefaultEventName = "hfestP"
)

var eventPathPattern = regexp.MustCompile(`/(hfest[A-Za-z]+)/`)

// EnvironmentResolver decides which deployment a verification URL points at,
// so the same server works for local development and the published site.
type EnvironmentResolver struct {
	productionBaseURL string
	defaultEvent      string
}

// NewEnvironmentResolver creates a resolver. Empty arguments fall back to
// DefaultProductionBaseURL and DefaultEventName.
func NewEnvironmentResolver(productionBaseURL, defaultEvent string) *EnvironmentResolver {
	if productionBaseURL == "" {
		productionBaseURL = DefaultProductionBaseURL
	}
	if defaultEvent == "" {
		defaultEvent = DefaultEventName
	}
	return &EnvironmentResolver{
		productionBaseURL: strings.TrimRight(productionBaseURL, "/"),
		defaultEvent:      defaultEvent,
	}
}

// ResolveBaseURL returns the page origin for local hosts (localhost,
// 127.0.0.1, 192.168.*) and the production base for everything else.
func (r *EnvironmentResolver) ResolveBaseURL(loc model.PageLocation) string {
	if IsLocalHostname(loc.Hostname()) {
		return loc.Origin()
	}
	return r.productionBaseURL
}

// ResolveEventName extracts the hfest event segment from a page path,
// e.g. "/hfestA/page.html" yields "hfestA".
func (r *EnvironmentResolver) ResolveEventName(path string) string {
	if m := eventPathPattern.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return r.defaultEvent
}

// IsLocalHostname reports whether hostname denotes a development host.
func IsLocalHostname(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		strings.HasPrefix(hostname, "192.168.")
}
