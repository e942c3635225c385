package main

import "github.com/mkrylatov/cutplan/internal/cli"

func main() {
	cli.Main()
}
