package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  Gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "provider" || fields[0].String != "Gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	enriched := WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	enriched.Info("does not panic")
}

func TestCandidateFields(t *testing.T) {
	fields := CandidateFields("candidate-1", "", "backend")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCandidateID || fields[1].Key != FieldJobID {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestWithCandidateAndCommonFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := WithCommonFields(zap.New(core), "gemini", "model-x")

	WithCandidate(log, "candidate-7", "cv.pdf", "backend").Info("screened")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	want := map[string]string{
		FieldProvider:    "gemini",
		FieldModel:       "model-x",
		FieldCandidateID: "candidate-7",
		FieldFileName:    "cv.pdf",
		FieldJobID:       "backend",
	}
	for key, value := range want {
		if ctx[key] != value {
			t.Fatalf("expected %s=%q, got %v", key, value, ctx[key])
		}
	}
}
