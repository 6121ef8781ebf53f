// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

import (
	"strings"
	"testing"
)

func TestValidObjectName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{name: "CALCINT", valid: true},
		{name: "calcint", valid: true},
		{name: "A", valid: true},
		{name: "$ACCT", valid: true},
		{name: "#TAX", valid: true},
		{name: "@DIST", valid: true},
		{name: "PGM_01", valid: true},
		{name: "ABCDEFGHIJ", valid: true},

		{name: "", valid: false},
		{name: "ABCDEFGHIJK", valid: false},
		{name: "1PGM", valid: false},
		{name: "_PGM", valid: false},
		{name: "MY PGM", valid: false},
		{name: "LIB/PGM", valid: false},
		{name: "PGM.CBL", valid: false},
	}
	for _, test := range tests {
		if got := ValidObjectName(test.name); got != test.valid {
			t.Errorf("Want ValidObjectName(%q) == %v, got %v", test.name, test.valid, got)
		}
	}
}

func TestProgramPath(t *testing.T) {
	got := ProgramPath("finlib", "calcint")
	want := "/QSYS.LIB/FINLIB.LIB/CALCINT.PGM"
	if got != want {
		t.Errorf("Want program path %s, got %s", want, got)
	}
}

func TestTempSourcePath(t *testing.T) {
	got := TempSourcePath("FINLIB", "CALCINT")
	if !strings.HasPrefix(got, "/tmp/FINLIB_CALCINT_") {
		t.Errorf("Want temp path prefix /tmp/FINLIB_CALCINT_, got %s", got)
	}
	if !strings.HasSuffix(got, ".cbl") {
		t.Errorf("Want temp path suffix .cbl, got %s", got)
	}
}
