package transcription

import "fmt"

// Code classifies why a request failed
type Code string

const (
	CodeUploadReadFailed  Code = "upload_read_failed"
	CodeUploadTooLarge    Code = "upload_too_large"
	CodeTranscodingFailed Code = "transcoding_failed"
	CodeArtifactFailed    Code = "artifact_failed"
	CodeProviderFailed    Code = "provider_failed"
)

// MessagePrefix starts every failure message returned to callers
const MessagePrefix = "Transcription failed: "

// Error is the failure variant of a Result
type Error struct {
	Code    Code
	Message string
	cause   error
}

func newError(code Code, cause error) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s%v", MessagePrefix, cause),
		cause:   cause,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Result carries either a transcript or an error, never both
type Result struct {
	Transcript string
	Err        *Error
}

// OK reports whether the result is the success variant
func (r Result) OK() bool {
	return r.Err == nil
}

// Success builds the transcript variant
func Success(transcript string) Result {
	return Result{Transcript: transcript}
}

// Failure builds the error variant
func Failure(code Code, cause error) Result {
	return Result{Err: newError(code, cause)}
}
