package results

// OperationResult carries either a domain success or a domain failure payload.
// Infrastructure errors travel on the separate error return; a failure here is
// an expected business outcome (not found, not eligible, validation) that the
// caller turns into a failure event rather than a retry.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether a failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
