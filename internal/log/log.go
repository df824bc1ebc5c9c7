// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TODOCTL_LOG env variable. When TODOCTL_LOG_FILE is set, entries are appended
// to that file instead of stderr, which keeps the TUI screen clean. The
// returned func closes the file, if any.
func InitLogger() (func() error, error) {
	level := strings.ToUpper(os.Getenv("TODOCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if path := os.Getenv("TODOCTL_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	log.SetHandler(NewHandler(w))
	if err := setLevel(level); err != nil {
		return closer, err
	}
	return closer, nil
}

func setLevel(level string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid TODOCTL_LOG %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// CustomHandler formats log messages and writes them to Writer.
type CustomHandler struct {
	mu     sync.Mutex
	Writer io.Writer
	now    func() time.Time
}

// NewHandler returns a CustomHandler writing to w.
func NewHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{Writer: w, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.Writer, b.String())
	return err
}
