// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "lunash-cli/cmd/lunash"
)

func main() {
	cmd.Execute()
}
