package main

import (
	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
