package main

import "github.com/alloylab/cli"

func main() {
	cli.Execute()
}
