package httpclient

// outcomeKind tags the result of a single physical attempt.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeHTTPFailure
	outcomeNetworkFailure
	outcomeTimeoutFailure
	outcomeCancelled
)

// attemptOutcome is the classification of one attempt. It is produced fresh
// per attempt and consumed by the retry policy; only the last one survives
// to become the terminal error.
type attemptOutcome struct {
	kind    outcomeKind
	status  int
	headers map[string]string
	body    []byte
	cause   error
}

func successOutcome(status int, headers map[string]string, body []byte) attemptOutcome {
	return attemptOutcome{kind: outcomeSuccess, status: status, headers: headers, body: body}
}

func httpFailureOutcome(status int, headers map[string]string, body []byte) attemptOutcome {
	return attemptOutcome{kind: outcomeHTTPFailure, status: status, headers: headers, body: body}
}

func networkFailureOutcome(cause error) attemptOutcome {
	return attemptOutcome{kind: outcomeNetworkFailure, cause: cause}
}

func timeoutFailureOutcome(cause error) attemptOutcome {
	return attemptOutcome{kind: outcomeTimeoutFailure, cause: cause}
}

func cancelledOutcome(cause error) attemptOutcome {
	return attemptOutcome{kind: outcomeCancelled, cause: cause}
}

// terminalError converts the last attempt's outcome into the classified
// error surfaced to the caller.
func (o attemptOutcome) terminalError() *Error {
	switch o.kind {
	case outcomeNetworkFailure:
		return NewNetworkError(o.cause)
	case outcomeTimeoutFailure:
		return NewTimeoutError(o.cause)
	case outcomeCancelled:
		return NewCancelledError(o.cause)
	case outcomeHTTPFailure:
		return NewStatusError(o.status, o.body)
	default:
		return nil
	}
}
