package main

import "github.com/ambersariya/tubechord/cmd"

func main() {
	cmd.Execute()
}
