package main

import (
	"os"

	"github.com/bankfeed-dev/bankfeed/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
