package main

import "daidelog/internal/cli"

func main() {
	cli.Execute()
}
