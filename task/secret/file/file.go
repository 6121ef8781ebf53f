// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package file provides a task handler that sources secrets
// from files on the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/common"
)

// Type is the task type handled by this package.
const Type = "secret/file"

type input struct {
	Path string `json:"path"`
}

// FetchHandler is a task handler that reads a secret from a
// file, typically a credentials file mounted into the runner
// environment. It runs as a secret sub-task so the value can
// be referenced by other tasks in the same request.
//
// Sample json input:
//
//	{
//	    "task": {
//	        "id": "ibmi_password",
//	        "type": "secret/file",
//	        "data": {
//	            "path": "/run/secrets/ibmi_password"
//	        }
//	    }
//	}
func FetchHandler(ctx context.Context, req *task.Request) task.Response {
	conf := new(input)

	// decode the task configuration.
	err := json.Unmarshal(req.Task.Data, conf)
	if err != nil {
		return task.Error(err)
	}

	// read the secret from the file.
	contents, err := os.ReadFile(conf.Path)
	if err != nil {
		return task.Error(err)
	}

	// credential files commonly end with a line break that is
	// not part of the secret.
	value := strings.TrimRight(string(contents), "\r\n")

	return task.Respond(
		&common.Secret{
			Value: value,
		},
	)
}
