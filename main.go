package main

import "github.com/prompthost/prompthost/cmd"

func main() {
	cmd.Execute()
}
