package main

import "github.com/luthersystems/lndw/cmd"

func main() {
	cmd.Execute()
}
