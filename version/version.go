// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package version holds the module's displayed version string, built the
// same way the teacher's CLI reports --version: a fmt.Sprintf-assembled
// string set once at init, optionally carrying a commit hash stamped in by
// the build script.
package version

import "fmt"

const CurrentVersion = "0.1.0"

var (
	// String is displayed when CLI arg --version is used.
	String string

	// GitCommit is set in the build script at compile time.
	GitCommit string
)

func init() {
	format := "avalanche-playground %s"
	args := []interface{}{CurrentVersion}
	if GitCommit != "" {
		format += " [commit=%s]"
		args = append(args, GitCommit)
	}
	String = fmt.Sprintf(format, args...)
}
