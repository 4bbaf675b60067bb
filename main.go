package main

import "github.com/maedana/torudo/cmd"

func main() {
	cmd.Execute()
}
