// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cobol

import (
	"context"
	"encoding/json"
	"time"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/pkg/errors"
)

// defaultCallTimeout bounds a program call when the task does
// not configure its own timeout.
const defaultCallTimeout = 5 * time.Minute

type (
	// input for the call task handler
	callInput struct {
		Connection *ibmi.Config     `json:"connection"`
		Library    string           `json:"library"`
		Program    string           `json:"program"`
		Parameters []ibmi.Parameter `json:"parameters"`
		Timeout    string           `json:"timeout"`
	}

	// output for the call task handler
	callOutput struct {
		ReturnCode int       `json:"returnCode"`
		Success    bool      `json:"success"`
		Messages   []string  `json:"messages"`
		Job        *ibmi.Job `json:"job,omitempty"`
		Duration   string    `json:"duration"`
	}
)

// callHandler calls a program object interactively.
type callHandler struct {
	dialer ibmi.Dialer
}

// NewCall returns a task handler that calls a program object
// and waits for it to complete.
//
// Sample json input:
//
//	{
//	    "task": {
//	        "id": "67c0938c-9348-4c5e-8624-28218984e09f",
//	        "type": "cobol/call",
//	        "data": {
//	            "connection": {
//	                "host": "pub400.com",
//	                "user": "QPGMR",
//	                "password": "${{secrets.ibmi_password}}"
//	            },
//	            "library": "GREENSCRN",
//	            "program": "CALCINT",
//	            "parameters": [
//	                "1000.00",
//	                { "value": "", "length": 32 }
//	            ]
//	        }
//	    }
//	}
func NewCall(dialer ibmi.Dialer) task.Handler {
	return &callHandler{dialer: dialer}
}

func (h *callHandler) Handle(ctx context.Context, req *task.Request) task.Response {
	if err := schemas.Validate(TypeCall, req.Task.Data); err != nil {
		return task.Error(err)
	}

	in := new(callInput)
	if err := json.Unmarshal(req.Task.Data, in); err != nil {
		return task.Error(err)
	}
	if err := validateObjectNames(in.Library, in.Program); err != nil {
		return task.Error(err)
	}

	timeout := defaultCallTimeout
	if in.Timeout != "" {
		var err error
		if timeout, err = time.ParseDuration(in.Timeout); err != nil {
			return task.Error(errors.Wrap(err, "invalid call timeout"))
		}
	}

	log := logger.FromContext(ctx).With(
		"library", in.Library,
		"program", in.Program,
	)
	logw := taskLog(req)

	system, err := dial(ctx, h.dialer, in.Connection)
	if err != nil {
		return task.Error(err)
	}
	defer disconnect(ctx, system)

	// the timeout bounds the program call only, so the job
	// lookup below still works after a slow call.
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	path := ibmi.ProgramPath(in.Library, in.Program)
	log.Debug("call program", "path", path, "timeout", timeout)

	start := time.Now()
	ok, messages, err := system.Call(callCtx, path, in.Parameters)
	duration := time.Since(start)
	if err != nil {
		return task.Error(errors.Wrap(err, "failed to call program"))
	}

	writeMessages(logw, messages)

	out := &callOutput{
		Success:  ok,
		Messages: formatMessages(messages),
		Duration: duration.String(),
	}
	if !ok {
		out.ReturnCode = 1
	}

	// the server job is informational. lookup failures are
	// logged and do not fail the task.
	if job, err := system.ServerJob(ctx); err != nil {
		log.Warn("could not read server job", "error", err)
	} else {
		out.Job = job
	}

	return task.Respond(out)
}
