// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cobol

import (
	"context"
	"encoding/json"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/pkg/errors"
)

type (
	// job attributes for the submit task handler
	submitJobConfig struct {
		Name  string `json:"jobName"`
		Queue string `json:"jobQueue"`
		User  string `json:"userProfile"`
	}

	// input for the submit task handler
	submitInput struct {
		Connection *ibmi.Config     `json:"connection"`
		Library    string           `json:"library"`
		Program    string           `json:"program"`
		Parameters []string         `json:"parameters"`
		Job        *submitJobConfig `json:"job"`
	}

	// output for the submit task handler
	submitOutput struct {
		Submitted bool      `json:"submitted"`
		Job       *ibmi.Job `json:"job,omitempty"`
		Messages  []string  `json:"messages"`
		Command   string    `json:"command"`
	}
)

// submitHandler submits a program call as a batch job.
type submitHandler struct {
	dialer ibmi.Dialer
}

// NewSubmit returns a task handler that submits a program call
// to a job queue with SBMJOB and returns without waiting for
// the job to run.
//
// Sample json input:
//
//	{
//	    "task": {
//	        "id": "67c0938c-9348-4c5e-8624-28218984e09f",
//	        "type": "cobol/submit",
//	        "data": {
//	            "connection": {
//	                "host": "pub400.com",
//	                "user": "QPGMR",
//	                "password": "${{secrets.ibmi_password}}"
//	            },
//	            "library": "GREENSCRN",
//	            "program": "EODBATCH",
//	            "parameters": [ "2026-08-21" ],
//	            "job": {
//	                "jobName": "EODBATCH",
//	                "jobQueue": "QBATCH"
//	            }
//	        }
//	    }
//	}
func NewSubmit(dialer ibmi.Dialer) task.Handler {
	return &submitHandler{dialer: dialer}
}

func (h *submitHandler) Handle(ctx context.Context, req *task.Request) task.Response {
	if err := schemas.Validate(TypeSubmit, req.Task.Data); err != nil {
		return task.Error(err)
	}

	in := new(submitInput)
	if err := json.Unmarshal(req.Task.Data, in); err != nil {
		return task.Error(err)
	}
	if err := validateObjectNames(in.Library, in.Program); err != nil {
		return task.Error(err)
	}

	opts := ibmi.SubmitOptions{Params: in.Parameters}
	if in.Job != nil {
		opts.Job = in.Job.Name
		opts.Queue = in.Job.Queue
		opts.User = in.Job.User
	}
	command := ibmi.SubmitCommand(in.Library, in.Program, opts)

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

	log.Debug("run submit command", "command", command)

	ok, messages, err := system.Run(ctx, command)
	if err != nil {
		return task.Error(errors.Wrap(err, "failed to run submit command"))
	}

	writeMessages(logw, messages)

	out := &submitOutput{
		Submitted: ok,
		Messages:  formatMessages(messages),
		Command:   command,
	}
	if !ok {
		log.Warn("job submission failed", "command", command)
	}
	if job := ibmi.ExtractJob(messages); job != nil {
		out.Job = job
		log.Info("job submitted", "job", job.Qualified)
	}
	return task.Respond(out)
}
