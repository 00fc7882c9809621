package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the client side TLS options of an outbound webhook.
type Config struct {
	SSLCA              string `toml:"ssl-ca" json:"ssl-ca"`
	SSLCert            string `toml:"ssl-cert" json:"ssl-cert"`
	SSLKey             string `toml:"ssl-key" json:"ssl-key"`
	InsecureSkipVerify bool   `toml:"insecure-skip-verify" json:"insecure-skip-verify"`
	MinVersion         string `toml:"min-version" json:"min-version"`
}

func NewConfig() Config {
	return Config{}
}

func (c Config) Validate() error {
	if (c.SSLCert == "") != (c.SSLKey == "") {
		return errors.New("must provide both key and cert files")
	}
	if c.MinVersion != "" {
		if _, ok := versionsMap[strings.ToUpper(c.MinVersion)]; !ok {
			return unknownVersion(c.MinVersion)
		}
	}
	return nil
}

// Create creates a new tls.Config object from the given certs, key, and CA files.
// It returns nil when c asks for nothing beyond the defaults.
func Create(c Config) (*tls.Config, error) {
	if c == (Config{}) {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	t := &tls.Config{
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
	if c.MinVersion != "" {
		t.MinVersion = versionsMap[strings.ToUpper(c.MinVersion)]
	}
	if c.SSLCert != "" {
		cert, err := tls.LoadX509KeyPair(c.SSLCert, c.SSLKey)
		if err != nil {
			return nil, errors.Wrap(err, "could not load TLS client key/certificate")
		}
		t.Certificates = []tls.Certificate{cert}
	}
	if c.SSLCA != "" {
		caCert, err := os.ReadFile(c.SSLCA)
		if err != nil {
			return nil, errors.Wrap(err, "could not load TLS CA")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates found in %s", c.SSLCA)
		}
		t.RootCAs = pool
	}
	return t, nil
}

var versionsMap = map[string]uint16{
	"TLS1.0": tls.VersionTLS10,
	"1.0":    tls.VersionTLS10,
	"TLS1.1": tls.VersionTLS11,
	"1.1":    tls.VersionTLS11,
	"TLS1.2": tls.VersionTLS12,
	"1.2":    tls.VersionTLS12,
	"TLS1.3": tls.VersionTLS13,
	"1.3":    tls.VersionTLS13,
}

func unknownVersion(name string) error {
	available := make([]string, 0, len(versionsMap))
	for name := range versionsMap {
		// skip the ones that just begin with a number. they may be confusing
		// due to the duplication.
		if name[0] == '1' {
			continue
		}
		available = append(available, name)
	}
	sort.Strings(available)

	return fmt.Errorf("unknown tls version: %q. available versions: %s",
		name, strings.Join(available, ", "))
}
