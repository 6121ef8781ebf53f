// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package masker

import (
	"bytes"
	"testing"
)

func TestMask(t *testing.T) {
	buf := new(bytes.Buffer)
	w := New(buf, []string{"correct-horse"})

	w.Write([]byte("signon failed for password correct-horse"))

	got, want := buf.String(), "signon failed for password "+masked
	if got != want {
		t.Errorf("Want masked output %q, got %q", want, got)
	}
}

func TestMask_Multiline(t *testing.T) {
	buf := new(bytes.Buffer)
	w := New(buf, []string{"line1\nline2"})

	w.Write([]byte("a line1 b line2 c"))

	got, want := buf.String(), "a "+masked+" b "+masked+" c"
	if got != want {
		t.Errorf("Want masked output %q, got %q", want, got)
	}
}

func TestMask_NoSecrets(t *testing.T) {
	buf := new(bytes.Buffer)
	w := New(buf, nil)

	if w != buf {
		t.Errorf("Want base writer returned when no secrets are provided")
	}
}

func TestSlice(t *testing.T) {
	got := Slice(map[string]string{"password": "correct-horse"})
	want := []string{"correct-horse"}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Want secret slice %v, got %v", want, got)
	}
}
