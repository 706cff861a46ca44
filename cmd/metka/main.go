package main

import (
	"context"
	"os"

	"github.com/ruby-gems/metka/cmd/metka/cmd"
)

func main() {
	command := cmd.RootCmd
	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
