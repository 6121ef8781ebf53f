// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cobol

import (
	"context"
	"fmt"
	"io"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/greenscreen-io/go-cobol-task/task/masker"
	"github.com/pkg/errors"
)

// dial validates the connection configuration and signs on to
// the system.
func dial(ctx context.Context, dialer ibmi.Dialer, conf *ibmi.Config) (ibmi.System, error) {
	if dialer == nil {
		return nil, errors.New("no system dialer configured")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	system, err := dialer.Dial(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to system")
	}
	logger.FromContext(ctx).Info("connected to system",
		"host", conf.Host,
		"user", conf.User,
	)
	return system, nil
}

// disconnect signs off from the system. Sign-off failures are
// logged and otherwise ignored.
func disconnect(ctx context.Context, system ibmi.System) {
	if err := system.Close(); err != nil {
		logger.FromContext(ctx).Warn("could not disconnect from system", "error", err)
		return
	}
	logger.FromContext(ctx).Info("disconnected from system")
}

// validateObjectNames checks that library and program follow
// IBM i object naming rules.
func validateObjectNames(library, program string) error {
	if !ibmi.ValidObjectName(library) {
		return errors.Errorf("invalid library name: %s", library)
	}
	if !ibmi.ValidObjectName(program) {
		return errors.Errorf("invalid program name: %s", program)
	}
	return nil
}

// taskLog returns the task log writer wrapped in the secret
// masker.
func taskLog(req *task.Request) io.Writer {
	w := req.Logger
	if w == nil {
		w = io.Discard
	}
	return masker.New(w, masker.Slice(req.Secrets))
}

// formatMessages renders command messages for task output.
func formatMessages(messages []ibmi.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.String()
	}
	return out
}

// writeMessages copies command messages to the task log.
func writeMessages(w io.Writer, messages []ibmi.Message) {
	for _, m := range messages {
		fmt.Fprintln(w, m.String())
	}
}
