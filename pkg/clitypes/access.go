// Package clitypes defines the value types shared by the devcli packages.
// This file contains access levels and session states.
package clitypes

import (
	"fmt"
	"strings"
)

// AccessLevel is an ordered permission tag. A node is visible and executable
// for a user whose level is greater than or equal to the node's level.
type AccessLevel int

const (
	// AccessUser is the lowest level, granted to every authenticated user
	AccessUser AccessLevel = iota
	// AccessAdmin unlocks administrative directories and commands
	AccessAdmin
)

// String returns the lower-case name used in configuration files.
func (l AccessLevel) String() string {
	switch l {
	case AccessUser:
		return "user"
	case AccessAdmin:
		return "admin"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Allows reports whether a holder of level l may access something guarded by required.
func (l AccessLevel) Allows(required AccessLevel) bool {
	return required <= l
}

// ParseAccessLevel converts a configuration string into an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "":
		return AccessUser, nil
	case "admin":
		return AccessAdmin, nil
	default:
		return AccessUser, fmt.Errorf("unknown access level %q", s)
	}
}

// SessionState is the top-level state of a CLI session.
type SessionState int

const (
	// StateInactive means the service is not accepting input
	StateInactive SessionState = iota
	// StateLoggedOut means the service waits for username:password
	StateLoggedOut
	// StateLoggedIn means a user is authenticated and navigating the tree
	StateLoggedIn
)

func (s SessionState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}
