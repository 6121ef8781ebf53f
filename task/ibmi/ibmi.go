// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ibmi defines the connection surface the cobol task
// handlers use to reach an IBM i system. The package does not
// speak the host server protocols itself; a Dialer provided
// by the embedding runner establishes connections, and the
// System interface abstracts command execution, program calls
// and integrated file system access over that connection.
package ibmi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"time"
)

// Connection defaults.
const (
	// DefaultPort is the port of the sign-on service.
	DefaultPort = 23

	// DefaultTimeout is the default connect timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultParameterLength is the default byte length of a
	// program call parameter buffer.
	DefaultParameterLength = 256
)

// Config provides the connection configuration for an
// IBM i system.
type Config struct {
	// Host provides the host name or address of the system.
	Host string `json:"host"`

	// User provides the user profile used to sign on.
	User string `json:"user"`

	// Password authenticates the user profile.
	Password string `json:"password"`

	// Port provides the port of the sign-on service.
	// Defaults to DefaultPort when zero.
	Port int `json:"port"`

	// Timeout bounds connection establishment, expressed as
	// a duration string such as "30s". Defaults to
	// DefaultTimeout when empty.
	Timeout string `json:"timeout"`
}

// Validate returns an error if required connection fields
// are missing.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("connection: configuration is required")
	}
	if c.Host == "" {
		return errors.New("connection: host is required")
	}
	if c.User == "" {
		return errors.New("connection: user is required")
	}
	if c.Password == "" {
		return errors.New("connection: password is required")
	}
	return nil
}

// Addr returns the host:port address of the sign-on service.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// ConnectTimeout returns the configured connect timeout.
func (c *Config) ConnectTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	return time.ParseDuration(c.Timeout)
}

// Parameter is a program call parameter. The length is the
// byte length of the parameter buffer on the system, which
// leaves room for output values the called program writes
// back. A zero length uses DefaultParameterLength.
type Parameter struct {
	Value  string
	Length int
}

// UnmarshalJSON accepts either a bare string value or an
// object with value and length fields.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		p.Length = 0
		return json.Unmarshal(data, &p.Value)
	}
	var v struct {
		Value  string `json:"value"`
		Length int    `json:"length"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Value = v.Value
	p.Length = v.Length
	return nil
}

// Size returns the parameter buffer length in bytes.
func (p Parameter) Size() int {
	if p.Length <= 0 {
		return DefaultParameterLength
	}
	return p.Length
}

// System is a signed-on connection to an IBM i system.
type System interface {
	// Run executes a CL command on the system. It returns
	// whether the command completed successfully along with
	// the messages the command produced. An error is
	// returned only for connection level failures; command
	// failures are reported through the ok result and the
	// message list.
	Run(ctx context.Context, command string) (ok bool, messages []Message, err error)

	// Call invokes the program object at path with the
	// provided parameters. Success and messages follow the
	// same convention as Run.
	Call(ctx context.Context, path string, params []Parameter) (ok bool, messages []Message, err error)

	// ServerJob returns the server job servicing this
	// connection.
	ServerJob(ctx context.Context) (*Job, error)

	// WriteFile writes data to path on the integrated file
	// system, replacing any existing file.
	WriteFile(ctx context.Context, path string, data []byte) error

	// RemoveFile removes path from the integrated file
	// system.
	RemoveFile(ctx context.Context, path string) error

	// Close signs off and releases the connection.
	Close() error
}

// Dialer establishes connections to IBM i systems.
type Dialer interface {
	Dial(ctx context.Context, conf *Config) (System, error)
}

// DialerFunc is an adapter to allow the use of ordinary
// functions as dialers.
type DialerFunc func(ctx context.Context, conf *Config) (System, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context, conf *Config) (System, error) {
	return f(ctx, conf)
}
