package main

import (
	"github.com/dszqbsm/jarchive/cmd"
)

func main() {
	cmd.Execute()
}
