package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "duplicate_submission", KindDuplicateSubmission.String())
	assert.Equal(t, "invalid_state", KindInvalidState.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "persistence", KindPersistence.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestConstructorsCarryKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"duplicate", DuplicateSubmission("twice"), KindDuplicateSubmission},
		{"invalid state", InvalidState("already decided"), KindInvalidState},
		{"not found", NotFound("gone"), KindNotFound},
		{"persistence", Persistence("store broke", errors.New("io")), KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestMissingFieldsEnumeratesAll(t *testing.T) {
	err := MissingFields([]string{"machineId", "studentId", "responses"})

	assert.True(t, IsKind(err, KindValidation))
	assert.Contains(t, err.Error(), "machineId")
	assert.Contains(t, err.Error(), "studentId")
	assert.Contains(t, err.Error(), "responses")
}

func TestPersistenceUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence("failed to save", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("missing"))

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
}

func TestKindOfForeignError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}
