package main

import (
	"os"

	"thresholdsecret/cmd/secretfinder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
