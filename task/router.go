// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"context"
	"encoding/json"
	"io"

	"github.com/greenscreen-io/go-cobol-task/task/common"
	"github.com/greenscreen-io/go-cobol-task/task/expression"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
)

// Router routes task execution requests to the
// appropriate handler.
type Router struct {
	middleware []func(Handler) Handler
	handlers   map[string]Handler
	notfound   Handler
}

func NewRouter() *Router {
	return &Router{
		handlers: map[string]Handler{},
	}
}

// Use adds the middleware onto the router stack.
func (h *Router) Use(fn func(Handler) Handler) {
	h.middleware = append(h.middleware, fn)
}

// Register registers the Handler to the router.
func (h *Router) Register(name string, handler Handler) {
	h.handlers[name] = handler
}

// RegisterFunc registers the HandlerFunc to the router.
func (h *Router) RegisterFunc(name string, handler HandlerFunc) {
	h.Register(name, HandlerFunc(handler))
}

// NotFound adds a handler to respond whenever a
// route cannot be found.
func (h *Router) NotFound(handler Handler) {
	h.notfound = handler
}

// NotFoundFunc adds a handler to respond whenever a
// route cannot be found.
func (h *Router) NotFoundFunc(handler HandlerFunc) {
	h.NotFound(HandlerFunc(handler))
}

// Handle routes the task request to a handler. Secret
// sub-tasks are resolved ahead of the primary task, and
// expressions in the task data are replaced with their
// resolved values before the handler executes.
func (h *Router) Handle(ctx context.Context, req *Request) Response {
	log := logger.FromContext(ctx).
		With("task.id", req.Task.ID).
		With("task.type", req.Task.Type)

	log.Debug("route task")

	// ensure all required variables are initialized.
	if req.Secrets == nil {
		req.Secrets = map[string]string{}
	}

	// handle each secret sub-task before handling
	// the primary task.
	secrets, err := h.ResolveSecrets(ctx, req.Tasks)
	if err != nil {
		return Error(err)
	}

	// merge ambient secrets provided with the request so
	// they participate in expression resolution, and expose
	// the resolved secrets to the handler for masking.
	for id, value := range req.Secrets {
		secrets = append(secrets, &common.Secret{ID: id, Value: value})
	}
	for _, secret := range secrets {
		req.Secrets[secret.ID] = secret.Value
	}

	// add the structured logger to the context.
	ctx = logger.WithContext(ctx, log)

	// discard task logs if a logger is not set.
	// a custom logger can be set by the caller or by
	// adding a middleware to the router.
	if req.Logger == nil {
		req.Logger = io.Discard
	}

	// resolve expressions in the task data.
	data, _, err := h.ResolveExpressions(ctx, secrets, req.Task.Data)
	if err != nil {
		return Error(err)
	}
	req.Task.Data = data

	// handle the primary task
	return h.handle(ctx, req)
}

// ResolveSecrets executes each secret sub-task and returns
// the resolved secrets. Sub-tasks are executed in order, and
// each sub-task may reference secrets resolved by the
// sub-tasks before it.
func (h *Router) ResolveSecrets(ctx context.Context, tasks []*Task) ([]*common.Secret, error) {
	var secrets []*common.Secret
	for _, subtask := range tasks {
		data, _, err := h.ResolveExpressions(ctx, secrets, subtask.Data)
		if err != nil {
			return nil, err
		}
		subtask.Data = data

		// handle the sub-task and get the result.
		res := h.handle(ctx, &Request{Task: subtask})

		// immediately exit if the system fails to
		// execute the secret task.
		if err := res.Error(); err != nil {
			return nil, err
		}

		// attempt to unmarshal the task response
		// body into the secret struct.
		secret := new(common.Secret)
		if err := json.Unmarshal(res.Body(), secret); err != nil {
			return nil, err
		}
		secret.ID = subtask.ID
		secrets = append(secrets, secret)
	}
	return secrets, nil
}

// ResolveExpressions resolves expressions in the task data
// using the provided secrets. It returns the resolved data
// and reports whether the data contained any expressions.
func (h *Router) ResolveExpressions(ctx context.Context, secrets []*common.Secret, data []byte) ([]byte, bool, error) {
	if !expression.Contains(data) {
		return data, false, nil
	}
	resolved, err := expression.New(secrets).Resolve(data)
	if err != nil {
		return nil, false, err
	}
	return resolved, true, nil
}

// handle routes the task request to a handler.
func (h *Router) handle(ctx context.Context, req *Request) Response {
	// lookup the task handler
	handler, ok := h.handlers[req.Task.Type]
	if !ok {
		// error if no route found
		if h.notfound == nil {
			return Errorf("handler not found")
		}

		// else use the not found handler
		// to handle the task.
		handler = h.notfound
	}

	// execute the handler stack with middleware
	return chain(h.middleware, handler).Handle(ctx, req)
}

// chain builds a Handler composed of an inline
// middleware stack and endpoint handler in the
// order they are passed.
func chain(middleware []func(Handler) Handler, handler Handler) Handler {
	// return ahead of time if there aren't any
	// middleware for the chain
	if len(middleware) == 0 {
		return handler
	}

	// wrap the end handler with the middleware chain
	h := middleware[len(middleware)-1](handler)
	for i := len(middleware) - 2; i >= 0; i-- {
		h = middleware[i](h)
	}

	return h
}
