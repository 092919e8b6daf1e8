package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallableStatus_HTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, CallableInvalidArgument.HTTPStatus())
	require.Equal(t, http.StatusBadRequest, CallableFailedPrecondition.HTTPStatus())
	require.Equal(t, http.StatusTooManyRequests, CallableResourceExhausted.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, CallableUnknown.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, CallableStatus("bogus").HTTPStatus())
}

func TestFailure_WireShape(t *testing.T) {
	b, err := json.Marshal(Failure(CallableFailedPrecondition, "not configured"))
	require.NoError(t, err)
	require.JSONEq(t, `{"error":{"status":"FAILED_PRECONDITION","message":"not configured"}}`, string(b))
}

func TestErrorT_UsesCodeMessage(t *testing.T) {
	r := ErrorT[any](APIResponseCodeNotFound, nil)
	require.Equal(t, "not found", r.Message)
	require.Equal(t, APIResponseCodeNotFound, r.Code)
}
