// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. FieldErrors for path params or HTTPError for API responses)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// Every failed request gets the same JSON shape, whatever layer the error
// came from:
//
//	{ "code": "BAD_REQUEST", "error": "invalid id", "status": 400 }
package errs
