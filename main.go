// SPDX-License-Identifier: MPL-2.0

// venvup bootstraps a project-local Python virtualenv: helper scripts,
// venv creation, and requirements installation.
package main

import cmd "venvup/cmd/venvup"

func main() {
	cmd.Execute()
}
