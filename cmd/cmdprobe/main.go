package main

import "cmdprobe/internal/cli"

func main() {
	cli.Execute()
}
