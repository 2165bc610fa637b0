package whisper

import "errors"

// ErrAuthFailed indicates the endpoint rejected the configured token.
var ErrAuthFailed = errors.New("whisper: authentication failed")

// ErrRateLimited indicates the endpoint rejected the request with a 429.
var ErrRateLimited = errors.New("whisper: rate limited")

// ErrMalformedResponse indicates the endpoint returned a payload the client
// could not interpret as a transcript.
var ErrMalformedResponse = errors.New("whisper: malformed response")
