// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import "io"

// Request defines a task request.
type Request struct {
	// Task provides the current task.
	Task *Task `json:"task"`

	// Tasks provides the secret sub-tasks that are
	// resolved ahead of the current task.
	Tasks []*Task `json:"secrets"`

	// Secrets provides the names and values of secrets
	// that are available to the task execution.
	Secrets map[string]string `json:"-"`

	// Logger provides the destination for task execution
	// logs. Secret values are masked before they reach
	// the writer.
	Logger io.Writer `json:"-"`

	// Account provides the account identifier.
	Account string `json:"account"`

	// ID provides a unique identifier to track the status of the request.
	ID string `json:"id"`
}
