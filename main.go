// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/globentries/cmd/globentries"

func main() {
	cmd.Execute()
}
