package main

import "github.com/rustyeddy/ta/internal/cli"

func main() {
	cli.Execute()
}
