// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloner

import (
	"context"
	"fmt"
	"os/exec"
)

type cloner struct{}

// Default returns the default cloner which relies on the
// os/exec package to clone a repository using the git
// binary installed on the host.
func Default() Cloner {
	return new(cloner)
}

func (c *cloner) Clone(ctx context.Context, params Params) error {
	args := []string{"clone", "--depth=1"}
	if params.Ref != "" {
		args = append(args, "--branch="+params.Ref)
	}
	args = append(args, params.Repo, params.Dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to clone repository: %v, output: %s", err, output)
	}

	// Check out the specific sha if provided. The shallow
	// clone above only fetches the branch tip, so the sha
	// must be reachable from the cloned ref.
	if params.Sha != "" {
		cmd = exec.CommandContext(ctx, "git", "-C", params.Dir, "checkout", params.Sha)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to checkout sha: %v, output: %s", err, output)
		}
	}

	return nil
}
