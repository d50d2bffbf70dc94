// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"context"
	"log/slog"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// SetLogger replaces the ring's logger. Pass nil to silence it.
//
// SetLogger is safe for concurrent use.
func (r *Ring) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	r.log.Store(l)
}

func (r *Ring) slogger() *slog.Logger { return r.log.Load() }
