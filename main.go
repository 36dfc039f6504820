package main

import (
	"github.com/rmdhfz/minimart/cmd"
)

func main() {
	cmd.Start()
}
