// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibmi

// Severity classes for system messages.
const (
	ClassError = "ERROR"
	ClassWarn  = "WARN"
	ClassInfo  = "INFO"
)

// Message is a message produced by the system for a command
// or program call.
type Message struct {
	// ID provides the message identifier, such as CPC1221.
	ID string `json:"id"`

	// Text provides the first level message text.
	Text string `json:"text"`

	// Severity provides the numeric message severity,
	// between 0 and 99.
	Severity int `json:"severity"`
}

// Class returns the severity class of the message. Messages
// with severity 30 and above are errors, 10 and above are
// warnings, everything below is informational.
func (m Message) Class() string {
	switch {
	case m.Severity >= 30:
		return ClassError
	case m.Severity >= 10:
		return ClassWarn
	default:
		return ClassInfo
	}
}

// String returns the message in "ID: Text" form.
func (m Message) String() string {
	if m.ID == "" {
		return m.Text
	}
	return m.ID + ": " + m.Text
}
