// Package banner prints version and contact notices for executables.
//
// Defaults are plain parameters here, never process-wide state: the values
// a program wants in its banner are wired in by its build (ldflags) or its
// caller.
package banner

import (
	"errors"
	"fmt"
	"io"
)

// ErrMissingVersion reports a version banner request without a version.
var ErrMissingVersion = errors.New("banner: missing version")

// Info describes a program for version output. Empty fields are omitted
// from the banner.
type Info struct {
	// Version of the executable, e.g. the release of the project it
	// belongs to. Required.
	Version string

	// Project the executable belongs to.
	Project string

	// Copyright notice, without the "Copyright (c) " prefix and
	// ". All rights reserved." suffix added here.
	Copyright string

	// License information, printed verbatim.
	License string
}

// PrintContact writes a contact notice.
func PrintContact(w io.Writer, contact string) {
	fmt.Fprintf(w, "Contact:\n  %s\n", contact)
}

// PrintVersion writes the program identification followed by copyright
// and license notices. The name should be a literal, not argv[0].
func PrintVersion(w io.Writer, name string, info Info) error {
	if info.Version == "" {
		return ErrMissingVersion
	}
	if info.Project != "" {
		fmt.Fprintf(w, "%s (%s) %s\n", name, info.Project, info.Version)
	} else {
		fmt.Fprintf(w, "%s %s\n", name, info.Version)
	}
	if info.Copyright != "" {
		fmt.Fprintf(w, "Copyright (c) %s. All rights reserved.\n", info.Copyright)
	}
	if info.License != "" {
		fmt.Fprintln(w, info.License)
	}
	return nil
}
