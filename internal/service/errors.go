package service

import "fmt"

// Kind classifies service failures for transport mapping. The kind is
// stable API surface; messages are not.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidIndex      Kind = "invalid_index"
	KindInvalidAudio      Kind = "invalid_audio"
	KindEmptySession      Kind = "empty_session"
	KindEvaluationFailure Kind = "evaluation_failure"
)

// Error is the structured failure the service hands to its transport
// layer. Internal causes stay wrapped and never reach the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errNotFound() *Error {
	return &Error{Kind: KindNotFound, Message: "Session not found"}
}

func errInvalidIndex(index, total int) *Error {
	return &Error{Kind: KindInvalidIndex, Message: fmt.Sprintf("Invalid question index %d (session has %d questions)", index, total)}
}

func errInvalidAudio() *Error {
	return &Error{Kind: KindInvalidAudio, Message: "Empty or invalid audio file received"}
}

func errEmptySession() *Error {
	return &Error{Kind: KindEmptySession, Message: "Session has no questions to aggregate"}
}

func errEvaluation(err error) *Error {
	return &Error{Kind: KindEvaluationFailure, Message: "Evaluation failed", Err: err}
}
