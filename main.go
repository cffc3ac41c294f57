package main

import "github.com/user/vidnotes/cmd"

func main() {
	cmd.Execute()
}
