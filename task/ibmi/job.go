// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

import "strings"

// Job identifies a job on the system.
type Job struct {
	// Name provides the job name.
	Name string `json:"name"`

	// Number provides the six digit job number.
	Number string `json:"number"`

	// User provides the user profile the job runs under.
	User string `json:"user"`

	// Qualified provides the fully qualified job identifier
	// in number/user/name form.
	Qualified string `json:"qualifiedJobName"`
}

// NewJob returns the job identified by the given number,
// user and name.
func NewJob(number, user, name string) *Job {
	return &Job{
		Name:      name,
		Number:    number,
		User:      user,
		Qualified: number + "/" + user + "/" + name,
	}
}

// ParseJob parses a qualified job identifier in
// number/user/name form.
func ParseJob(s string) (*Job, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, false
	}
	return NewJob(parts[0], parts[1], parts[2]), true
}

// ExtractJob scans command messages for a job submission
// confirmation, such as CPC1221, and extracts the qualified
// job identifier from the message text. It returns nil if no
// message carries one.
func ExtractJob(messages []Message) *Job {
	for _, m := range messages {
		text := m.Text
		if !strings.Contains(text, "submitted") && !strings.Contains(text, "SBMJOB") {
			continue
		}
		if !strings.Contains(text, "/") {
			continue
		}
		for _, field := range strings.Fields(text) {
			if job, ok := ParseJob(field); ok {
				return job
			}
		}
	}
	return nil
}
