package mocks

import "lodge/infras/otel"

// noopScope satisfies otel.Scope for tests that do not inspect spans.
type noopScope struct{}

func NewScope() otel.Scope {
	return noopScope{}
}

func (noopScope) End() {}

func (noopScope) AddEvent(string) {}

func (noopScope) TraceError(error) {}

func (noopScope) TraceIfError(error) {}

func (noopScope) SetAttribute(string, any) {}

func (noopScope) SetAttributes(map[string]any) {}
