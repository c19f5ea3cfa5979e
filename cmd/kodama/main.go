package main

import "github.com/mikanfactory/kodama/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
