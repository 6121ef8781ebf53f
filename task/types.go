// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import "encoding/json"

type Task struct {
	// ID provides a unique task identifier.
	ID string `json:"id"`

	// Type provides the task type. The type determines
	// which registered handler executes the task.
	Type string `json:"type"`

	// Data provides task execution data. The payload
	// format is handler-specific and is validated by
	// the handler before execution.
	Data json.RawMessage `json:"data"`
}
