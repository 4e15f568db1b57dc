package main

import "github.com/kevineulenberg/domain-testing-suite/cmd"

// execCmd is indirected so main stays testable.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
