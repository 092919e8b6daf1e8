package response

import "net/http"

// CallableStatus is the canonical error status of an RPC-style callable
// endpoint. The wire protocol matches Firebase callable functions so existing
// storefront clients keep working: requests are {"data": ...}, successes are
// {"result": ...} and failures are {"error": {"status", "message"}}.
type CallableStatus string

const (
	CallableInvalidArgument    CallableStatus = "INVALID_ARGUMENT"
	CallableFailedPrecondition CallableStatus = "FAILED_PRECONDITION"
	CallableResourceExhausted  CallableStatus = "RESOURCE_EXHAUSTED"
	CallableUnknown            CallableStatus = "UNKNOWN"
	CallableInternal           CallableStatus = "INTERNAL"
)

var callableHTTPStatus = map[CallableStatus]int{
	CallableInvalidArgument:    http.StatusBadRequest,
	CallableFailedPrecondition: http.StatusBadRequest,
	CallableResourceExhausted:  http.StatusTooManyRequests,
	CallableUnknown:            http.StatusInternalServerError,
	CallableInternal:           http.StatusInternalServerError,
}

// HTTPStatus maps a callable status to its HTTP status code.
func (s CallableStatus) HTTPStatus() int {
	if code, ok := callableHTTPStatus[s]; ok {
		return code
	}
	return http.StatusInternalServerError
}

type CallableRequest[T any] struct {
	Data T `json:"data"`
}

type CallableResult[T any] struct {
	Result T `json:"result"`
}

type CallableErrorBody struct {
	Status  CallableStatus `json:"status"`
	Message string         `json:"message"`
}

type CallableError struct {
	Error CallableErrorBody `json:"error"`
}

// Result wraps a callable success payload.
func Result[T any](data T) *CallableResult[T] {
	return &CallableResult[T]{Result: data}
}

// Failure builds a callable error envelope.
func Failure(status CallableStatus, message string) *CallableError {
	return &CallableError{Error: CallableErrorBody{Status: status, Message: message}}
}
