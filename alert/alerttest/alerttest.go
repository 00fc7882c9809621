// Package alerttest provides sample alert records and files for tests.
package alerttest

import (
	"os"
	"path/filepath"
	"testing"
)

// SSHBruteForce is a complete alert as written by the manager.
const SSHBruteForce = `{"timestamp":"2024-05-02T10:11:12.000+0000","rule":{"level":10,"description":"sshd: brute force trying to get access to the system.","id":"5712","groups":["syslog","sshd","authentication_failures"]},"agent":{"id":"001","name":"web-01"},"manager":{"name":"wazuh-manager"},"id":"1714644672.1234","full_log":"May  2 10:11:12 web-01 sshd[811]: Failed password for root from 10.0.0.5 port 5522 ssh2","data":{"title":"SSH brute force","file":"/var/log/auth.log"},"location":"/var/log/auth.log"}`

// Minimal is an alert carrying nothing but its id.
const Minimal = `{"id":"1714644672.9999"}`

// WriteFile writes lines to a file in a fresh temp dir and returns its path.
func WriteFile(t testing.TB, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alert.json")
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}
