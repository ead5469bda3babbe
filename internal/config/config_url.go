// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var natsSchemes = map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}

// validateNATSURL checks a NATS server list as accepted by nats.Connect:
// one or more comma-separated URLs, each with a NATS scheme and a host.
func validateNATSURL(raw string) error {
	for _, server := range strings.Split(raw, ",") {
		server = strings.TrimSpace(server)
		if server == "" {
			return fmt.Errorf("empty server in list %q", raw)
		}

		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("failed to parse %q: %w", server, err)
		}
		if !natsSchemes[u.Scheme] {
			return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("host is required in %q (e.g., localhost:4222)", server)
		}
	}
	return nil
}
