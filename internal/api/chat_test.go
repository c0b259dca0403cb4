package api

import (
	"errors"
	"testing"

	"github.com/mkcodedev2/persona-realista/internal/ai"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapGenerationError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "missing credential is the caller's problem",
			err:    &ai.Error{Kind: ai.ErrMissingCredential, Provider: "Anthropic"},
			status: 400,
			code:   "MISSING_API_KEY",
		},
		{
			name:   "unsupported provider",
			err:    &ai.Error{Kind: ai.ErrUnsupportedProvider, Provider: "Cohere"},
			status: 400,
			code:   "UNSUPPORTED_PROVIDER",
		},
		{
			name:   "provider status becomes bad gateway",
			err:    &ai.Error{Kind: ai.ErrProvider, Provider: "OpenAI", Status: 429},
			status: 502,
			code:   "PROVIDER_ERROR",
		},
		{
			name:   "network failure becomes bad gateway",
			err:    &ai.Error{Kind: ai.ErrNetwork, Provider: "Groq"},
			status: 502,
			code:   "PROVIDER_UNREACHABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapGenerationError(tt.err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, mapped, &appErr)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestMapGenerationErrorPassesOtherErrorsThrough(t *testing.T) {
	notFound := apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "character not found")
	assert.Equal(t, error(notFound), mapGenerationError(notFound))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapGenerationError(plain))
}

func TestMapGenerationErrorKeepsProviderMessage(t *testing.T) {
	mapped := mapGenerationError(&ai.Error{Kind: ai.ErrProvider, Provider: "OpenAI", Status: 401})

	var appErr *apperrors.AppError
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, "OpenAI request failed with status 401", appErr.Message)
}
