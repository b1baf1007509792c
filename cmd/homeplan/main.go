package main

import "homeplan/internal/cli"

func main() {
	cli.Execute()
}
