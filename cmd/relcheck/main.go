package main

import (
	"github.com/hiraeth92/BMC-API-Reliability-Test/cmd"
)

func main() {
	cmd.Execute()
}
