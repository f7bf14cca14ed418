// Command healthcheck probes a running verify25 server from inside its
// container and exits non-zero when the server is unhealthy.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const defaultAddr = "127.0.0.1:8000"

func main() {
	os.Exit(check(os.Getenv("VERIFY25_LISTEN_ADDR"), os.Args[1:]))
}

// check requests the health endpoint and then every extra path given on the
// command line, e.g. "/hfestP/", so a deploy can assert its event pages render.
func check(listenAddr string, paths []string) int {
	base := "http://" + normalizeAddr(listenAddr)
	client := &http.Client{Timeout: 2 * time.Second}

	for _, p := range append([]string{"/api/v1/health"}, paths...) {
		if err := probe(client, base+p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}

func probe(client *http.Client, url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return nil
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address. Docker containers bind 0.0.0.0 but the healthcheck runs
// inside the same container, so loopback is reachable and more correct.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
