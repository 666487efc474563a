package main

import "github.com/notargets/gobone/cmd"

func main() {
	cmd.Execute()
}
