package main

import (
	"os"

	"github.com/utahvbr/bizdirctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
