/*
Copyright © 2026 The wkctx authors
*/
package main

import (
	"github.com/wkctx/wkctx/cmd"
)

func main() {
	cmd.Execute()
}
