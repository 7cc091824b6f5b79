package main

import (
	"os"

	"github.com/epmodel/schedkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
