package models

import (
	"fmt"
)

// DuplicatePolicy defines what happens when a move target already exists.
type DuplicatePolicy string

const (
	// PolicyInteractive asks the caller for each collision; a declined
	// overwrite falls back to creating a new copy
	PolicyInteractive DuplicatePolicy = "interactive"
	// PolicyAutoCopy never overwrites; a non-colliding name is synthesized
	PolicyAutoCopy DuplicatePolicy = "auto-copy"
	// PolicyAutoOverwrite always replaces the existing destination file
	PolicyAutoOverwrite DuplicatePolicy = "auto-overwrite"
)

// ParseDuplicatePolicy parses a policy name as accepted on the command line
// and in web request bodies.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case PolicyInteractive, PolicyAutoCopy, PolicyAutoOverwrite:
		return DuplicatePolicy(s), nil
	default:
		return "", fmt.Errorf("invalid duplicate policy: %q (valid: interactive, auto-copy, auto-overwrite)", s)
	}
}

// Valid reports whether the policy is one of the known values.
func (p DuplicatePolicy) Valid() bool {
	switch p {
	case PolicyInteractive, PolicyAutoCopy, PolicyAutoOverwrite:
		return true
	}
	return false
}
