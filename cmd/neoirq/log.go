package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"omibyte.io/neoirq/mmio"
)

func newLogger(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// traced logs every access made through a register window at debug level.
type traced struct {
	name   string
	regs   mmio.Window
	logger *slog.Logger
}

func trace(name string, regs mmio.Window, logger *slog.Logger) mmio.Window {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return regs
	}
	return &traced{name: name, regs: regs, logger: logger}
}

func (t *traced) Load(offset uintptr) uint32 {
	value := t.regs.Load(offset)
	t.logger.Debug("load", "block", t.name, "offset", offset, "value", hex32(value))
	return value
}

func (t *traced) Store(offset uintptr, value uint32) {
	t.logger.Debug("store", "block", t.name, "offset", offset, "value", hex32(value))
	t.regs.Store(offset, value)
}

type hex32 uint32

func (h hex32) LogValue() slog.Value {
	return slog.StringValue(fmt.Sprintf("0x%08x", uint32(h)))
}
