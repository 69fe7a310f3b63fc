package main

import "github.com/andrescamacho/starnav-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
