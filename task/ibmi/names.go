// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

import (
	"fmt"
	"strings"
	"time"
)

// ValidObjectName reports whether name is a valid system
// object name. Object names are one to ten characters long,
// begin with a letter or one of $, #, @, and contain only
// letters, digits, $, #, @ and _.
func ValidObjectName(name string) bool {
	if len(name) == 0 || len(name) > 10 {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z',
			r >= 'a' && r <= 'z',
			r == '$', r == '#', r == '@':
		case i > 0 && (r >= '0' && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// ProgramPath returns the integrated file system path of the
// program object in the QSYS library file system. Library
// and program names are folded to upper case.
func ProgramPath(library, program string) string {
	return fmt.Sprintf("/QSYS.LIB/%s.LIB/%s.PGM",
		strings.ToUpper(library), strings.ToUpper(program))
}

// TempSourcePath returns a unique path under /tmp on the
// integrated file system for staging a source member before
// compilation.
func TempSourcePath(library, program string) string {
	return fmt.Sprintf("/tmp/%s_%s_%d.cbl", library, program, time.Now().UnixMilli())
}
