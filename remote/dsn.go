package remote

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// DSN is the parsed form of a CLICKHOUSE_URL value:
// tcp://[user[:pass]@]host[:port][/?secure=true&skip_verify=true]
type DSN struct {
	Host       string
	Port       int
	User       string
	Password   string
	Secure     bool
	SkipVerify bool
}

const defaultPort = 9000

// EnvURL is the environment variable the remote collaborator reads its
// server address from.
const EnvURL = "CLICKHOUSE_URL"

// ParseEnv reads EnvURL from the environment and parses it.
func ParseEnv() (DSN, error) {
	raw := os.Getenv(EnvURL)
	if raw == "" {
		return DSN{}, fmt.Errorf("remote.ParseEnv: %s is not set", EnvURL)
	}

	return ParseDSN(raw)
}

// ParseDSN parses the CLICKHOUSE_URL shape used by the remote-scan
// collaborator. Only the tcp scheme is accepted; this module reads the
// connection shape without implementing a client for it.
func ParseDSN(raw string) (DSN, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return DSN{}, fmt.Errorf("remote.ParseDSN: %w", err)
	}

	if u.Scheme != "tcp" {
		return DSN{}, fmt.Errorf("remote.ParseDSN: unsupported scheme %q, want \"tcp\"", u.Scheme)
	}

	if u.Host == "" {
		return DSN{}, fmt.Errorf("remote.ParseDSN: missing host in %q", raw)
	}

	d := DSN{Host: u.Hostname(), Port: defaultPort}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return DSN{}, fmt.Errorf("remote.ParseDSN: invalid port %q: %w", p, err)
		}

		d.Port = port
	}

	if u.User != nil {
		d.User = u.User.Username()
		d.Password, _ = u.User.Password()
	}

	q := u.Query()
	d.Secure = q.Get("secure") == "true"
	d.SkipVerify = q.Get("skip_verify") == "true"

	return d, nil
}
