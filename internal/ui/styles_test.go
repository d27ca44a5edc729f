package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderError(t *testing.T) {
	got := RenderError(errors.New("boom"))
	if !strings.Contains(got, "Error:") || !strings.Contains(got, "boom") {
		t.Errorf("RenderError() = %q", got)
	}
}

func TestRenderEndpoint(t *testing.T) {
	got := RenderEndpoint("GraphQL", "http://localhost:4000/graphql")
	if !strings.Contains(got, "GraphQL:") || !strings.Contains(got, "http://localhost:4000/graphql") {
		t.Errorf("RenderEndpoint() = %q", got)
	}
}
