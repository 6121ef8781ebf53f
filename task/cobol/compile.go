// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cobol

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/downloader"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/pkg/errors"
)

type (
	// input for the compile task handler
	compileInput struct {
		Connection *ibmi.Config       `json:"connection"`
		Library    string             `json:"library"`
		Program    string             `json:"program"`
		Source     *downloader.Source `json:"source"`
		Options    string             `json:"compileOptions"`
	}

	// output for the compile task handler
	compileOutput struct {
		Success  bool     `json:"success"`
		Program  string   `json:"programPath"`
		Messages []string `json:"compileMessages"`
		Source   string   `json:"sourceFile"`
	}
)

// compileHandler compiles COBOL source into a program object.
type compileHandler struct {
	dialer    ibmi.Dialer
	downloads downloader.Downloader
}

// NewCompile returns a task handler that stages COBOL source on
// the integrated file system and compiles it into a program
// object with CRTBNDCBL.
//
// Sample json input:
//
//	{
//	    "task": {
//	        "id": "67c0938c-9348-4c5e-8624-28218984e09f",
//	        "type": "cobol/compile",
//	        "data": {
//	            "connection": {
//	                "host": "pub400.com",
//	                "user": "QPGMR",
//	                "password": "${{secrets.ibmi_password}}"
//	            },
//	            "library": "GREENSCRN",
//	            "program": "CALCINT",
//	            "source": {
//	                "inline": "IDENTIFICATION DIVISION. ..."
//	            }
//	        }
//	    }
//	}
func NewCompile(dialer ibmi.Dialer, downloads downloader.Downloader) task.Handler {
	return &compileHandler{dialer: dialer, downloads: downloads}
}

func (h *compileHandler) Handle(ctx context.Context, req *task.Request) task.Response {
	if err := schemas.Validate(TypeCompile, req.Task.Data); err != nil {
		return task.Error(err)
	}

	in := new(compileInput)
	if err := json.Unmarshal(req.Task.Data, in); err != nil {
		return task.Error(err)
	}
	if err := validateObjectNames(in.Library, in.Program); err != nil {
		return task.Error(err)
	}

	source, err := h.sourceText(ctx, in.Source)
	if err != nil {
		return task.Error(err)
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

	// stage the source on the integrated file system
	srcPath := ibmi.TempSourcePath(in.Library, in.Program)
	if err := system.WriteFile(ctx, srcPath, []byte(source)); err != nil {
		return task.Error(errors.Wrap(err, "failed to write source file"))
	}

	command := ibmi.CompileCommand(in.Library, in.Program, srcPath, in.Options)
	log.Debug("run compile command", "command", command)

	ok, messages, err := system.Run(ctx, command)
	if err != nil {
		return task.Error(errors.Wrap(err, "failed to run compile command"))
	}

	// log compile messages at a level matching their severity
	for _, m := range messages {
		entry := log.With("id", m.ID, "severity", m.Severity)
		switch m.Class() {
		case ibmi.ClassError:
			entry.Error(m.Text)
		case ibmi.ClassWarn:
			entry.Warn(m.Text)
		default:
			entry.Info(m.Text)
		}
		fmt.Fprintf(logw, "[%s] %s\n", m.Class(), m.String())
	}

	// remove the staged source file. removal failures are
	// logged and do not fail the task.
	if err := system.RemoveFile(ctx, srcPath); err != nil {
		log.Warn("could not remove source file", "path", srcPath, "error", err)
	}

	return task.Respond(&compileOutput{
		Success:  ok,
		Program:  ibmi.ProgramPath(in.Library, in.Program),
		Messages: formatMessages(messages),
		Source:   srcPath,
	})
}

// sourceText returns the COBOL source text for the task.
func (h *compileHandler) sourceText(ctx context.Context, src *downloader.Source) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}
	if src.Inline != "" {
		return src.Inline, nil
	}
	file, err := h.downloads.Fetch(ctx, src)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "failed to read source file")
	}
	return string(data), nil
}
