package logger

import (
	"errors"
	"testing"
)

func TestFieldsPairsKeyValues(t *testing.T) {
	f := fields([]interface{}{"version", "1.0.0", "port", "8080"})

	if f["version"] != "1.0.0" {
		t.Errorf("expected version field, got %v", f["version"])
	}
	if f["port"] != "8080" {
		t.Errorf("expected port field, got %v", f["port"])
	}
}

func TestFieldsBareError(t *testing.T) {
	err := errors.New("boom")
	f := fields([]interface{}{err})

	if f["error"] != err {
		t.Errorf("expected bare error under error key, got %v", f["error"])
	}
}

func TestFieldsOddTrailingValue(t *testing.T) {
	f := fields([]interface{}{"key", "value", 42})

	if f["key"] != "value" {
		t.Errorf("expected key field, got %v", f["key"])
	}
	if f["error"] != 42 {
		t.Errorf("expected trailing value under error key, got %v", f["error"])
	}
}

func TestFieldsEmpty(t *testing.T) {
	if got := len(fields(nil)); got != 0 {
		t.Errorf("expected no fields, got %d", got)
	}
}
