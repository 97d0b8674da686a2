// Package buildlog provides BuildListener sinks for record operations.
package buildlog

import (
	"fmt"
	"io"
	"sync"

	"github.com/natpasukit/jenkins/internal/domain"

	"go.uber.org/zap"
)

// WriterListener writes each line to an io.Writer, one line per Println.
type WriterListener struct {
	w io.Writer
}

func NewWriter(w io.Writer) *WriterListener {
	return &WriterListener{w: w}
}

func (l *WriterListener) Println(line string) {
	fmt.Fprintln(l.w, line)
}

// Buffer collects lines in memory, preserving order, for API responses.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *Buffer) Println(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// ZapListener forwards lines to a zap logger at info level.
type ZapListener struct {
	logger *zap.Logger
}

func NewZap(logger *zap.Logger) *ZapListener {
	return &ZapListener{logger: logger}
}

func (l *ZapListener) Println(line string) {
	l.logger.Info(line)
}

// Multi fans each line out to every non-nil listener, in order.
func Multi(listeners ...domain.BuildListener) domain.BuildListener {
	out := make(multi, 0, len(listeners))
	for _, l := range listeners {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type multi []domain.BuildListener

func (m multi) Println(line string) {
	for _, l := range m {
		l.Println(line)
	}
}
