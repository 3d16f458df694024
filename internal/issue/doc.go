// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing error types for the
// venvup CLI. An ActionableError records what operation failed, which
// file or path was involved, and suggestions the operator can act on.
package issue
