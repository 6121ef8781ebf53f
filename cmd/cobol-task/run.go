// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/greenscreen-io/go-cobol-task/task"
)

var runPretty bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a task request file",
	Long:  "Execute a task request from a json or yaml file and print the task output.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(args[0])
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runPretty, "pretty", false, "Pretty print the task output")
}

func runTask(path string) error {
	req, err := loadRequest(path)
	if err != nil {
		return err
	}
	req.Logger = os.Stderr

	res := newRouter().Handle(context.Background(), req)
	if err := res.Error(); err != nil {
		return err
	}

	if runPretty {
		fmt.Fprintf(os.Stdout, "id:   %s\n", req.Task.ID)
		fmt.Fprintf(os.Stdout, "type: %s\n", req.Task.Type)
		fmt.Fprintln(os.Stdout)

		// re-encode the response body with indentation
		var body any
		if err := json.Unmarshal(res.Body(), &body); err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	}

	os.Stdout.Write(res.Body())
	fmt.Fprintln(os.Stdout)
	return nil
}

// loadRequest reads a task request from a json or yaml file.
func loadRequest(path string) (*task.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// yaml task files are converted to json before decoding
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return nil, err
		}
	}

	req := new(task.Request)
	if err := json.Unmarshal(data, req); err != nil {
		return nil, err
	}
	if req.Task == nil {
		return nil, errors.New("request file has no task")
	}

	// assign identifiers when the file omits them
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Task.ID == "" {
		req.Task.ID = uuid.NewString()
	}
	for _, t := range req.Tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
	}
	return req, nil
}
