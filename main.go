package main

import "github.com/Tiliavir/clocklog/cmd"

func main() {
	cmd.Execute()
}
