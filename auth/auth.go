// Package auth checks operator credentials against a plain credentials file.
package auth

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials maps user names to passwords.
type Credentials map[string]string

// Load reads one "user password" pair per line. Blank lines and lines starting with # are
// ignored.
func Load(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (Credentials, error) {
	creds := make(Credentials)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("credentials line %d: want \"user password\"", n)
		}
		creds[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return creds, nil
}

func (c Credentials) Verify(user, password string) error {
	want, ok := c[user]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
