package api

import "errors"

var (
	// ErrBackendUnavailable indicates the study-plan backend is unreachable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrRemote indicates the backend answered with a non-2xx status.
	// 4xx and 5xx are deliberately not distinguished; callers show one
	// generic failure either way.
	ErrRemote = errors.New("backend rejected request")

	// ErrUnknownProvider indicates an unsupported social login provider.
	ErrUnknownProvider = errors.New("unknown social login provider")

	// ErrNoToken indicates a callback URL without a token parameter.
	ErrNoToken = errors.New("no token in callback")
)
