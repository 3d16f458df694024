// SPDX-License-Identifier: MPL-2.0

// Package shell materializes composed shell command lines into temporary
// executable scripts and runs them as child processes.
//
// A Script is a structured command specification (interpreter, optional
// source script, ordered argument list) that is validated before it is
// ever written to disk. Execution goes through the Runner interface so
// tests can substitute a fake process runner without touching the
// filesystem beyond the materialized script itself.
package shell
