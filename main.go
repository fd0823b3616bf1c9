package main

import "github.com/retidy/retidy/cmd"

func main() {
	cmd.Execute()
}
