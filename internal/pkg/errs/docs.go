// Package errs provides the typed errors shared by every layer of the ordering service.
//
// Each error kind follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details of the failure
//   - New... and New...WithCause constructors
//   - Unwrap returning the sentinel
//
// The kinds map one to one onto the outcomes a transport has to distinguish:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//   - ReferenceIsInvalidError: an order line names a product the catalog does not know
//   - DependencyIsUnavailableError: the catalog timed out or could not be reached
//   - ObjectNotFoundError: the requested order does not exist
//   - ConflictError: the requested status transition is not allowed
//
// Anything else is an unexpected fault.
package errs
