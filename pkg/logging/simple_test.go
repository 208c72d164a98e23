package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestDefaultWriter(t *testing.T) {
	s := NewSimpleLogSink(nil, LEVEL_DEBUG, false)
	assert.Equal(t, os.Stderr, s.writer)
}

func TestEnabled(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_DEBUG, false)
	assert.True(t, s.Enabled(LEVEL_INFO))
	assert.True(t, s.Enabled(LEVEL_DEBUG))
	assert.False(t, s.Enabled(LEVEL_TRACE))
}

func TestInfoLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.Info(LEVEL_INFO, "parsed header", "version", 2)
	assert.Equal(t, "[INFO] parsed header\n  version: 2\n", buf.String())
}

func TestInfoNotLoggedWhenDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_INFO, false)
	s.Info(LEVEL_DEBUG, "dropped", "foo", "bar")
	assert.Zero(t, buf.Len())
}

func TestErrorLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_INFO, false)
	s.Error(errors.New("bad magic"), "parse failed", "path", "boot.img")
	out := buf.String()
	assert.Contains(t, out, "[ERROR] parse failed")
	assert.Contains(t, out, "path: boot.img")
	assert.Contains(t, out, "error: bad magic")
}

func TestLevelLabels(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 5, false)
	s.Info(LEVEL_DEBUG, "d")
	s.Info(LEVEL_TRACE, "t")
	s.Info(4, "x")
	assert.Equal(t, "[DEBUG] d\n[TRACE] t\n[LEVEL 4] x\n", buf.String())
}

func TestWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.WithName("bootimg").WithName("header").Info(LEVEL_INFO, "hello")
	assert.Equal(t, "[INFO] [bootimg.header] hello\n", buf.String())
}

func TestWithValues(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	child := s.WithValues("path", "vendor_boot.img")
	child.Info(LEVEL_INFO, "opened", "size", 4096)
	assert.Equal(t, "[INFO] opened\n  path: vendor_boot.img\n  size: 4096\n", buf.String())

	// The parent is unaffected.
	buf.Reset()
	s.Info(LEVEL_INFO, "plain")
	assert.Equal(t, "[INFO] plain\n", buf.String())
}

func TestWithValuesKeepsSettings(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_TRACE, true)
	child := s.WithValues("k", "v").(*SimpleLogSink)
	assert.True(t, child.useColor)
	assert.Equal(t, LEVEL_TRACE, child.minVerbosity)
	assert.Same(t, s.mutex, child.mutex)
}

func TestNonStringKey(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.Info(LEVEL_INFO, "odd", 123, "value")
	assert.Contains(t, buf.String(), "key0: value")
}

func TestInitSetsCallDepth(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_DEBUG, false)
	s.Init(logr.RuntimeInfo{CallDepth: 5})
	assert.Equal(t, 5, s.callDepth)
}

func TestLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(NewSimpleLogger(buf, LEVEL_DEBUG, false))
	l.Info("info")
	l.Debug("debug")
	l.Trace("trace")
	l.Error(errors.New("boom"), "error")
	assert.Equal(t, "[INFO] info\n[DEBUG] debug\n[ERROR] error\n  error: boom\n", buf.String())
}

func TestLoggerWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(NewSimpleLogger(buf, LEVEL_INFO, false)).WithName("bootview").WithValues("family", "boot")
	l.Info("header")
	assert.Equal(t, "[INFO] [bootview] header\n  family: boot\n", buf.String())
}

func TestNewLoggerWithoutSink(t *testing.T) {
	l := NewLogger(logr.Logger{})
	assert.NotPanics(t, func() { l.Info("dropped") })

	assert.NotPanics(t, func() { DefaultLogger().Error(errors.New("x"), "dropped") })
}
