package main

import "github.com/quadmesh/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
