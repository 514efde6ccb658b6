// Command witnessgen drives the witness-generation engine from a JSON
// circuit fixture, for manual inspection and smoke-testing. A cobra root
// command with RunE returning errors instead of calling os.Exit deep in
// the call stack.
package main

import (
	"fmt"
	"os"

	"github.com/gitrdm/gokanwitness/cmd/witnessgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
