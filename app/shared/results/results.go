// Package results defines the operation result envelope shared by all
// application services.
package results

// OperationResult carries the business outcome of a service operation.
// Success and Failure are event payloads; at most one is set. A Failure with a
// nil error means the operation completed but business validation rejected it,
// and the caller decides whether to publish, log, or ignore the failure
// payload instead of having the error thrown past the module boundary.
type OperationResult struct {
	Success any
	Failure any
}

// SuccessResult wraps a success payload.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a failure payload.
func FailureResult(payload any) OperationResult {
	return OperationResult{Failure: payload}
}
