/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package log

import (
	"context"
	"log/slog"

	"github.com/crewjam/rfc5424"
)

// Enabled implements slog.Handler, gating on the Logger's own level.
func (l *Logger) Enabled(_ context.Context, lvl slog.Level) bool {
	return l.GetLevel() <= slogToLevel(lvl)
}

// Handle implements slog.Handler, routing slog.Record output through the
// same RFC5424 structured-data path used by Info/Warn/Error/etc so that a
// *Logger can be handed directly to slog.New.
func (l *Logger) Handle(ctx context.Context, r slog.Record) error {
	return (&slogHandler{l: l}).Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (l *Logger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return (&slogHandler{l: l}).WithAttrs(attrs)
}

// WithGroup implements slog.Handler.
func (l *Logger) WithGroup(name string) slog.Handler {
	return (&slogHandler{l: l}).WithGroup(name)
}

// slogHandler carries the per-derivation state (bound attributes, group
// prefix) that slog.Logger.With/WithGroup accumulate, without mutating or
// copying the underlying *Logger (which embeds a sync.Mutex and must never
// be copied by value).
type slogHandler struct {
	l         *Logger
	baseAttrs []rfc5424.SDParam
	group     string
}

func (h *slogHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.l.GetLevel() <= slogToLevel(lvl)
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	sds := make([]rfc5424.SDParam, 0, r.NumAttrs()+len(h.baseAttrs))
	sds = append(sds, h.baseAttrs...)
	r.Attrs(func(a slog.Attr) bool {
		sds = append(sds, KV(h.prefixGroup(a.Key), a.Value.String()))
		return true
	})
	return h.l.outputStructured(DEFAULT_DEPTH+2, slogToLevel(r.Level), r.Message, sds...)
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := &slogHandler{l: h.l, group: h.group}
	n.baseAttrs = make([]rfc5424.SDParam, 0, len(h.baseAttrs)+len(attrs))
	n.baseAttrs = append(n.baseAttrs, h.baseAttrs...)
	for _, a := range attrs {
		n.baseAttrs = append(n.baseAttrs, KV(h.prefixGroup(a.Key), a.Value.String()))
	}
	return n
}

// WithGroup folds the group name into a dotted attribute-key prefix; the
// flat RFC5424 structured-data model has no native nesting.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == `` {
		return h
	}
	n := &slogHandler{l: h.l, baseAttrs: h.baseAttrs}
	if h.group == `` {
		n.group = name
	} else {
		n.group = h.group + `.` + name
	}
	return n
}

func (h *slogHandler) prefixGroup(key string) string {
	if h.group == `` {
		return key
	}
	return h.group + `.` + key
}

func slogToLevel(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return ERROR
	case l >= slog.LevelWarn:
		return WARN
	case l >= slog.LevelInfo:
		return INFO
	default:
		return DEBUG
	}
}
