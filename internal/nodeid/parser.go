// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a single identifier segment, e.g. `sma20` or `entry-long`.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// isValidName checks for undesirable but technically matching names.
func isValidName(name string) bool {
	if name == "-" || name == "_" {
		return false
	}
	return true
}

// Validate checks that a raw string is usable as a node identifier.
func Validate(raw string) (ID, error) {
	if raw == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	if !nameRegex.MatchString(raw) || !isValidName(raw) {
		return "", fmt.Errorf("invalid identifier format: %q", raw)
	}
	return ID(raw), nil
}

// ParsePortRef parses the canonical `node.port` form. The port is the part
// after the last dot.
func ParsePortRef(raw string) (PortRef, error) {
	if raw == "" {
		return PortRef{}, fmt.Errorf("port reference cannot be empty")
	}

	idx := strings.LastIndex(raw, ".")
	if idx <= 0 || idx == len(raw)-1 {
		return PortRef{}, fmt.Errorf("invalid port reference %q: expected 'node.port'", raw)
	}

	id, err := Validate(raw[:idx])
	if err != nil {
		return PortRef{}, fmt.Errorf("invalid port reference %q: %w", raw, err)
	}

	port := raw[idx+1:]
	if !nameRegex.MatchString(port) {
		return PortRef{}, fmt.Errorf("invalid port name in reference %q", raw)
	}

	return PortRef{Node: id, Port: port}, nil
}
