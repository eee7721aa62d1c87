package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder fields", func(t *testing.T) {
		err := ValidationError("unknown topic").
			WithContext("topic", "nope").
			Build()

		require.Equal(t, CategoryValidation, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, RetryUserAction, err.RetryStrategy())
		require.False(t, err.CanRetry())

		topic, ok := err.Context().GetString("topic")
		require.True(t, ok)
		require.Equal(t, "nope", topic)
		require.Equal(t, "[validation:fatal] unknown topic", err.Error())
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "read registry").Build()
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "permission denied")
	})

	t.Run("found through fmt wrapping", func(t *testing.T) {
		base := NotFoundError("no history").Build()
		wrapped := fmt.Errorf("compare: %w", base)

		require.True(t, HasCategory(wrapped, CategoryNotFound))
		require.ErrorIs(t, wrapped, NotFoundError("no history").Build())
	})

	t.Run("unclassified", func(t *testing.T) {
		_, ok := AsClassified(stderrors.New("plain"))
		require.False(t, ok)
	})
}
