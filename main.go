package main

import "github.com/alexiusacademia/gopetro/cmd"

func main() {
	cmd.Execute()
}
