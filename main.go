package main

import "github.com/pradikta/taskhub/cmd"

func main() {
	cmd.Execute()
}
