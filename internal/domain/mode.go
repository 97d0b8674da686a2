package domain

import (
	"strconv"
	"strings"
)

// ToolchainMode distinguishes the two supported toolchain generations. The
// enumeration keeps the uniqueness policy table explicit and exhaustively
// matched.
type ToolchainMode int

const (
	// ModeLegacy covers toolchains that still honor non-unique version
	// deployment.
	ModeLegacy ToolchainMode = iota
	// ModeModern covers toolchains that always deploy unique versions.
	ModeModern
)

func (m ToolchainMode) String() string {
	if m == ModeModern {
		return "modern"
	}
	return "legacy"
}

// ModeForVersion classifies a recorded toolchain version string. Major
// version 3 or later is modern; anything older or unparsable is legacy.
func ModeForVersion(version string) ToolchainMode {
	version = strings.TrimSpace(version)
	if version == "" {
		return ModeLegacy
	}
	major := version
	if i := strings.IndexAny(version, ".-"); i >= 0 {
		major = version[:i]
	}
	n, err := strconv.Atoi(major)
	if err != nil || n < 3 {
		return ModeLegacy
	}
	return ModeModern
}
