// Package expression resolves expressions in task data
// before the data reaches a task handler.
//
// Two expression styles are supported. The secret reference
// style replaces "${{secrets.<id>}}" markers with the value
// of the named secret. The template style evaluates
// "<{ ... }>" expressions with the template functions and
// the resolved secrets as context.
package expression

import (
	"bytes"

	"github.com/greenscreen-io/go-cobol-task/task/common"
)

type Resolver struct {
	secrets []*common.Secret
}

func New(secrets []*common.Secret) *Resolver {
	return &Resolver{secrets: secrets}
}

// Resolve resolves all expressions in the task data and
// returns the resolved result.
func (r *Resolver) Resolve(data []byte) ([]byte, error) {
	// first pass replaces secret references.
	if bytes.Contains(data, []byte(secretPrefix)) {
		resolved, err := newSecretResolver(r.secrets).Resolve(data)
		if err != nil {
			return nil, err
		}
		data = resolved
	}

	// second pass evaluates template expressions.
	if bytes.Contains(data, []byte(delimStart)) {
		resolved, err := newTemplateResolver(r.secrets).Resolve(data)
		if err != nil {
			return nil, err
		}
		data = resolved
	}

	return data, nil
}

// Contains reports whether the data contains any
// expressions that require resolution.
func Contains(data []byte) bool {
	return bytes.Contains(data, []byte("${{")) ||
		bytes.Contains(data, []byte(delimStart))
}
