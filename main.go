package main

import "relation-checker/cmd"

func main() {
	cmd.Execute()
}
