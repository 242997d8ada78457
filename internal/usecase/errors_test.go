package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	code, reason := Classify(newError(ErrorUpstream, "upstream_error", errors.New("dial")))
	require.Equal(t, ErrorUpstream, code)
	require.Equal(t, "upstream_error", reason)

	wrapped := fmt.Errorf("outer: %w", newError(ErrorMalformedReply, "no_json_object", ErrNoJSONObject))
	code, reason = Classify(wrapped)
	require.Equal(t, ErrorMalformedReply, code)
	require.Equal(t, "no_json_object", reason)

	code, reason = Classify(errors.New("boom"))
	require.Equal(t, ErrorInternal, code)
	require.Equal(t, "unclassified", reason)
}

func TestError_Formatting(t *testing.T) {
	require.Equal(t, "usecase: UPSTREAM_ERROR (upstream_error)", newError(ErrorUpstream, "upstream_error", nil).Error())
	require.Equal(t, "usecase: MALFORMED_REPLY (invalid_json): bad", newError(ErrorMalformedReply, "invalid_json", errors.New("bad")).Error())

	var nilErr *Error
	require.Equal(t, "", nilErr.Error())
	require.Nil(t, nilErr.Unwrap())
}
