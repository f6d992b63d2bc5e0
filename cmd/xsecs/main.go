package main

import "github.com/gcrlab/xsecs/internal/cli"

func main() {
	cli.Execute()
}
