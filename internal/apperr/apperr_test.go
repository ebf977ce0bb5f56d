package apperr

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidConfig(t *testing.T) {
	err := InvalidConfig("width", "must be positive")
	assert.Equal(t, KindInvalidConfig, err.Kind)
	assert.Equal(t, "width", err.Field)
	assert.Equal(t, 2, err.Kind.ExitCode())
}

func TestTemplateParse(t *testing.T) {
	err := TemplateParse(12, "unknown command SNOW")
	assert.Equal(t, KindTemplateParse, err.Kind)
	assert.Equal(t, 12, err.Line)
}

func TestCanceledExitCode(t *testing.T) {
	err := Canceled("hydrology")
	assert.Equal(t, 3, err.Kind.ExitCode())
}

func TestInvariantViolatedExitCode(t *testing.T) {
	err := InvariantViolated("mesh", "neighbor set not mutual")
	assert.Equal(t, 4, err.Kind.ExitCode())
}

func TestWrapPreservesKind(t *testing.T) {
	base := MissingPrerequisite("climate")
	wrapped := Wrap(base, stdErrors.New("boom"))
	assert.Equal(t, KindMissingPrerequisite, wrapped.Kind)
	assert.ErrorIs(t, wrapped, wrapped.Err)
}

func TestIs(t *testing.T) {
	err := Canceled("detail")
	assert.True(t, Is(err, KindCanceled))
	assert.False(t, Is(err, KindInvalidConfig))
	assert.False(t, Is(stdErrors.New("plain"), KindCanceled))
}

func TestToDiagnostic(t *testing.T) {
	err := TemplateParse(3, "bad range syntax")
	diag, ok := ToDiagnostic(err)
	assert.True(t, ok)
	assert.Equal(t, KindTemplateParse, diag.Kind)
	assert.Equal(t, 3, diag.Line)

	_, ok = ToDiagnostic(stdErrors.New("plain"))
	assert.False(t, ok)
}
