// Command smppctl binds, submits, and serves SMPP v5 sessions from
// the command line, exercising the session and pdu packages end to
// end.
package main

import (
	"fmt"
	"os"

	"github.com/Ucell-first/smppv5/cmd/smppctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
