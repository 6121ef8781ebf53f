// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/greenscreen-io/go-cobol-task/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task api over http",
	Long:  "Serve the task api over http so a host system can post task requests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.New(serveAddr, newRouter()).ListenAndServe()
	},
}

func registerServeCommand(root *cobra.Command) {
	root.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":3480", "Listen address")
}
