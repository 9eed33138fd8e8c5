package main

import "github.com/deepwork-cli/dwt/cmd"

func main() {
	cmd.Execute()
}
