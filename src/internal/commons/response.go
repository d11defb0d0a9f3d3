package commons

// Response is the JSON envelope returned by every endpoint. Code is set only
// on failures produced by a service.
type Response[T any] struct {
	Success bool     `json:"success"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Message: message,
		Errors:  errors,
	}
}

// FailureResponse is ErrorResponse with a failure code attached.
func FailureResponse[T any](code, message string, errors ...string) Response[T] {
	response := ErrorResponse[T](message, errors...)
	response.Code = code
	return response
}
