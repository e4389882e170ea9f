// Package pgdsn parses a connection-string grammar into its component
// fields. The scheduler and pgconn packages never see anything but an
// already-dialed transport; this package exists only so a caller has a
// convenient way to describe where to dial one.
//
// Grammar:
//
//	[alias=]scheme://[user[:password]@]host:port[database]
//	scheme://unix:/path/to/socket[database]
package pgdsn

import (
	"fmt"
	"strconv"
	"strings"
)

// DSN is a parsed connection string.
type DSN struct {
	Alias    string
	Scheme   string
	User     string
	Password string
	Host     string
	Port     int
	Socket   string // set instead of Host/Port for a unix:/path form
	Database string
}

// Parse parses s per the package grammar. Whitespace is ignored throughout.
func Parse(s string) (*DSN, error) {
	s = strings.Join(strings.Fields(s), "")
	d := &DSN{}

	if eq := strings.Index(s, "="); eq >= 0 && eq < strings.Index(s, "://") {
		d.Alias = s[:eq]
		s = s[eq+1:]
	}

	schemeSep := strings.Index(s, "://")
	if schemeSep < 0 {
		return nil, fmt.Errorf("pgdsn: missing scheme in %q", s)
	}
	d.Scheme = s[:schemeSep]
	rest := s[schemeSep+3:]

	rest, database, err := extractDatabase(rest)
	if err != nil {
		return nil, err
	}
	d.Database = database

	if strings.HasPrefix(rest, "unix:") {
		d.Socket = rest[len("unix:"):]
		return d, nil
	}

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		creds := rest[:at]
		rest = rest[at+1:]
		if colon := strings.Index(creds, ":"); colon >= 0 {
			d.User = creds[:colon]
			d.Password = creds[colon+1:]
		} else {
			d.User = creds
		}
	}

	host, port, err := splitHostPort(rest)
	if err != nil {
		return nil, err
	}
	d.Host = host
	d.Port = port
	return d, nil
}

// extractDatabase strips a trailing [database] suffix, if present, and
// returns the remainder alongside the extracted name.
func extractDatabase(s string) (rest, database string, err error) {
	open := strings.Index(s, "[")
	if open < 0 {
		return s, "", nil
	}
	closeIdx := strings.Index(s, "]")
	if closeIdx < 0 || closeIdx < open {
		return "", "", fmt.Errorf("pgdsn: unterminated database name in %q", s)
	}
	return s[:open] + s[closeIdx+1:], s[open+1 : closeIdx], nil
}

func splitHostPort(s string) (string, int, error) {
	colon := strings.LastIndex(s, ":")
	if colon < 0 {
		return s, 0, nil
	}
	host := s[:colon]
	portStr := s[colon+1:]
	if portStr == "" {
		return host, 0, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("pgdsn: invalid port %q: %w", portStr, err)
	}
	return host, port, nil
}
