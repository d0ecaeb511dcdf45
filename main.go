package main

import "github.com/shaderkit/flatten/cmd"

func main() {
	cmd.Execute()
}
