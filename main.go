package main

import "jakca/internal/commands"

func main() {
	commands.Execute()
}
