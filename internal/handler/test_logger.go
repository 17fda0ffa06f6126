package handler

import (
	"fmt"
	"strings"
	"sync"
)

// MockHandlerLogger records log lines for handler package tests.
type MockHandlerLogger struct {
	mu    sync.Mutex
	lines []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) record(level, msg string, fields []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+msg+" "+fmt.Sprint(fields))
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) { l.record("INFO", msg, fields) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.record("ERROR", msg+" - "+err.Error(), fields)
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) { l.record("DEBUG", msg, fields) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  { l.record("WARN", msg, fields) }

// Last returns the most recent log line, or "" when nothing was logged
func (l *MockHandlerLogger) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

func (l *MockHandlerLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
