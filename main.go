package main

import "github.com/tiamat-cli/tiamat/cmd"

func main() {
	cmd.Execute()
}
