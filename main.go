package main

import (
	"os"

	"github.com/tally-pay/tally-cli/cmd"
)

func main() {
	if err := cmd.Execute(Version); err != nil {
		os.Exit(1)
	}
}
