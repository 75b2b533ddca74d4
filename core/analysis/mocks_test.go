package analysis

import (
	"context"

	"competitor-monitor-api/core/interfaces"
)

// mockCompleter is a mock implementation of the ChatCompleter interface
type mockCompleter struct {
	completeFunc func(ctx context.Context, req interfaces.ChatRequest) (string, error)
	requests     []interfaces.ChatRequest
}

func (m *mockCompleter) Complete(ctx context.Context, req interfaces.ChatRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return "", nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}
