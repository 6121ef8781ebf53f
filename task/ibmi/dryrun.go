// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

import (
	"context"
	"strings"
	"sync"

	"github.com/greenscreen-io/go-cobol-task/task/logger"
)

// DryRun returns a Dialer whose connections validate the
// configuration and accept every command without contacting
// a system. The command line runner uses it when no live
// system is configured, so task payloads and the generated
// CL commands can be previewed safely.
func DryRun() Dialer {
	return DialerFunc(func(ctx context.Context, conf *Config) (System, error) {
		if err := conf.Validate(); err != nil {
			return nil, err
		}
		if _, err := conf.ConnectTimeout(); err != nil {
			return nil, err
		}

		logger.FromContext(ctx).
			With("system.addr", conf.Addr()).
			Debug("dial dry-run system")

		return &dryRun{conf: conf, files: map[string][]byte{}}, nil
	})
}

// dryRun is a System that records commands and file writes
// instead of executing them.
type dryRun struct {
	conf *Config

	mu       sync.Mutex
	commands []string
	calls    []string
	files    map[string][]byte
	closed   bool
}

func (d *dryRun) Run(ctx context.Context, command string) (bool, []Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, command)
	return true, nil, nil
}

func (d *dryRun) Call(ctx context.Context, path string, params []Parameter) (bool, []Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, path)
	return true, nil, nil
}

func (d *dryRun) ServerJob(ctx context.Context) (*Job, error) {
	return NewJob("000000", strings.ToUpper(d.conf.User), "DRYRUN"), nil
}

func (d *dryRun) WriteFile(ctx context.Context, path string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = data
	return nil
}

func (d *dryRun) RemoveFile(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *dryRun) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
