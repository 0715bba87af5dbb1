package main

import "github.com/Ruscigno/argus/cmd"

func main() {
	cmd.Execute()
}
