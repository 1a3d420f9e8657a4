package main

import "github.com/alexiusacademia/gopyramid/cmd"

func main() {
	cmd.Execute()
}
