package domain

import "net/http"

// HTTPError is a structured failure carrying the exact status and
// message a client should see. Handlers return it up the call chain;
// the API layer is the single place that serializes it to a response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func Conflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

func PayloadTooLarge(message string) *HTTPError {
	return NewHTTPError(http.StatusRequestEntityTooLarge, message)
}

// BadUpstream marks a failure of an external collaborator, such as the
// CDN refusing a pull-upload.
func BadUpstream(message string) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, message)
}
