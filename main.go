package main

import (
	"os"

	"github.com/amrit/lexiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
