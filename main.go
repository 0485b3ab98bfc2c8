package main

import "github.com/dvidx/tempo/cmd"

func main() {
	cmd.Execute()
}
