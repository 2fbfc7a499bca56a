package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider    = "ai_provider"
	FieldModel       = "ai_model"
	FieldCandidateID = "candidate_id"
	FieldFileName    = "file_name"
	FieldJobID       = "job_id"
)

// StringField is a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describe the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the AI provider and model to logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// CandidateFields identify one screening record in log entries.
func CandidateFields(candidateID, fileName, jobID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: candidateID},
		StringField{Key: FieldFileName, Value: fileName},
		StringField{Key: FieldJobID, Value: jobID},
	)
}

// WithCandidate attaches the candidate identity fields to logger.
func WithCandidate(logger *zap.Logger, candidateID, fileName, jobID string) *zap.Logger {
	return WithFields(logger, CandidateFields(candidateID, fileName, jobID)...)
}
