// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server exposes a task router over HTTP. The host
// system posts task requests and receives the task output
// synchronously; queueing, scheduling and retries stay with
// the host.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/sirupsen/logrus"
)

// maxRequestSize bounds the task request body. Inline COBOL
// sources are small; anything larger should use a uri or repo
// source.
const maxRequestSize = 16 << 20

// Server serves a task router over HTTP.
type Server struct {
	Addr   string
	Router *task.Router
}

// New returns a Server that listens on addr.
func New(addr string, router *task.Router) *Server {
	return &Server{Addr: addr, Router: router}
}

// Handler returns the http.Handler serving the task api.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /task", s.handleTask)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	logrus.WithField("addr", s.Addr).Infoln("starting task server")
	return http.ListenAndServe(s.Addr, s.Handler())
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := new(task.Request)
	if err := json.Unmarshal(body, req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Task == nil {
		writeError(w, http.StatusBadRequest, errors.New("request has no task"))
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"task.id":   req.Task.ID,
		"task.type": req.Task.Type,
	})
	log.Infoln("task received")

	// stream the task log through the request logger
	logw := log.WriterLevel(logrus.InfoLevel)
	defer logw.Close()
	req.Logger = logw

	res := s.Router.Handle(r.Context(), req)
	if err := res.Error(); err != nil {
		log.WithError(err).Warnln("task failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithField("elapsed", time.Since(start)).Infoln("task complete")

	w.Header().Set("Content-Type", "application/json")
	w.Write(res.Body())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"status":"ok"}`)
}

// writeError writes err to the response as a json object.
func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
