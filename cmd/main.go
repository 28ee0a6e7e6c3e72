package main

import (
	"os"

	"passwordCrackerSim/internal/platform/cli"
)

func main() {
	os.Exit(cli.Execute())
}
