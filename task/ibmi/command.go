// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

import (
	"fmt"
	"strings"
)

// QuoteValue escapes a value for use inside a quoted CL
// command parameter. Single quotes are doubled per CL
// quoting rules.
func QuoteValue(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// CompileCommand returns the CRTBNDCBL command that compiles
// the source stream file at srcPath into the named program
// object. Additional compile options, such as
// "DBGVIEW(*SOURCE)", are appended verbatim.
func CompileCommand(library, program, srcPath, options string) string {
	cmd := fmt.Sprintf("CRTBNDCBL PGM(%s/%s) SRCSTMF('%s')",
		strings.ToUpper(library), strings.ToUpper(program), QuoteValue(srcPath))
	if options != "" {
		cmd += " " + options
	}
	return cmd
}

// SubmitOptions configures the batch job created by
// SubmitCommand. Empty fields are omitted from the command
// and the corresponding job attributes fall back to the
// submitting job description.
type SubmitOptions struct {
	// Job provides the name of the submitted job.
	Job string

	// Queue provides the job queue the job is placed on.
	Queue string

	// User provides the user profile the job runs under.
	User string

	// Params provides the program call parameters.
	Params []string
}

// SubmitCommand returns the SBMJOB command that submits a
// call to the named program as a batch job. Library and
// program names are folded to upper case and parameter
// values are quoted per CL quoting rules.
func SubmitCommand(library, program string, opts SubmitOptions) string {
	call := fmt.Sprintf("CALL PGM(%s/%s)",
		strings.ToUpper(library), strings.ToUpper(program))

	if len(opts.Params) > 0 {
		quoted := make([]string, len(opts.Params))
		for i, p := range opts.Params {
			quoted[i] = "'" + QuoteValue(p) + "'"
		}
		call += " PARM(" + strings.Join(quoted, " ") + ")"
	}

	cmd := "SBMJOB CMD(" + call + ")"
	if opts.Job != "" {
		cmd += " JOB(" + opts.Job + ")"
	}
	if opts.Queue != "" {
		cmd += " JOBQ(" + opts.Queue + ")"
	}
	if opts.User != "" {
		cmd += " USER(" + opts.User + ")"
	}
	return cmd
}
