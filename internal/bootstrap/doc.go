// SPDX-License-Identifier: MPL-2.0

// Package bootstrap implements the environment setup sequence: idempotent
// helper script generation, virtualenv creation at the fixed project
// venv directory, and pip installation of requirement manifests.
//
// The steps run strictly in order with no retries; the first failure
// aborts the remaining sequence. Concurrent invocations against the same
// project root are not supported and may race on venv creation or helper
// file writes.
package bootstrap
