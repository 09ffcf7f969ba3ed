package main

import (
	"github.com/Ilikepi739/swim/internal/cli"
)

func main() {
	cli.Execute()
}
