// Package validation contains the logic for validating
// request data.
//
// Payloads validate themselves (Validatable); this package binds them
// from the Echo context, runs the validation, and turns failures,
// including `validator` tag errors, into a format the client can
// understand
package validation
