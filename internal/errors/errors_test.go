package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/sheet-api/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "character not found")

	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "character not found", err.Message)
	assert.Equal(t, "NOT_FOUND: character not found", err.Error())
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := errors.NotFound("character abc not found")
	wrapped := errors.Wrap(inner, "failed to load snapshot")

	assert.Equal(t, errors.CodeNotFound, wrapped.Code)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(inner, "failed to reach sheet service")

	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "ignored"))
}

func TestWrapWithCode(t *testing.T) {
	inner := fmt.Errorf("dial tcp: timeout")
	wrapped := errors.WrapWithCode(inner, errors.CodeUnavailable, "sheet service unreachable")

	assert.Equal(t, errors.CodeUnavailable, wrapped.Code)
	assert.True(t, errors.IsUnavailable(wrapped))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"nil error", nil, errors.CodeOK},
		{"custom error", errors.InvalidArgument("bad input"), errors.CodeInvalidArgument},
		{"plain error", fmt.Errorf("boom"), errors.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.GetCode(tt.err))
		})
	}
}

func TestWithMeta(t *testing.T) {
	err := errors.Internal("extraction failed").
		WithMeta("character_id", "abc").
		WithMeta("pass", "spells")

	assert.Equal(t, "abc", err.Meta["character_id"])
	assert.Equal(t, "spells", err.Meta["pass"])
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors builds nil", func(t *testing.T) {
		assert.NoError(t, errors.NewValidationBuilder().Build())
	})

	t.Run("collects field errors", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		vb.RequiredField("SheetClient")
		vb.RequiredField("CharacterRepo")

		err := vb.Build()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("ValidateRequired catches whitespace", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("characterID", "   ", vb)
		require.Error(t, vb.Build())
	})
}
