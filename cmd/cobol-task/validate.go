// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenscreen-io/go-cobol-task/task/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a task request file",
	Long:  "Validate the task data in a request file against its schema without executing it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateTask(args[0])
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateTask(path string) error {
	req, err := loadRequest(path)
	if err != nil {
		return err
	}

	schemas, err := schema.New()
	if err != nil {
		return err
	}
	if err := schemas.Validate(req.Task.Type, req.Task.Data); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s: valid %s task\n", path, req.Task.Type)
	return nil
}
