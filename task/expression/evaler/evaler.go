// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evaler provides helper functions for evaluating
// secret references in map structures.

package evaler

import (
	"strings"

	"github.com/greenscreen-io/go-cobol-task/task/common"
)

// Eval walks the map structure and replaces secret
// references with the matching secret values.
func Eval(data map[string]any, secrets []*common.Secret) {
	var walk func(any) (bool, string)

	// walk visits each value in the structure and replaces
	// secret references in string values.
	walk = func(i any) (_ bool, _ string) {
		switch v := i.(type) {
		case string:
			if !strings.Contains(v, "${{") {
				return
			}
			return true, replaceSecrets(v, secrets)
		case []any:
			for i := 0; i < len(v); i++ {
				if ok, updated := walk(v[i]); ok {
					v[i] = updated
				}
			}
		case map[string]any:
			for key, value := range v {
				if ok, updated := walk(value); ok {
					v[key] = updated
				}
			}
		}
		return
	}

	// walk the map
	walk(data)
}

// replaceSecrets replaces all secret references in s with
// the matching secret values. References to unknown secrets
// are left unmodified.
func replaceSecrets(s string, secrets []*common.Secret) string {
	for _, secret := range secrets {
		ref := "${{secrets." + secret.ID + "}}"
		s = strings.ReplaceAll(s, ref, secret.Value)
	}
	return s
}
