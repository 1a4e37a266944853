package main

import "github.com/mj1618/uidrive/cmd"

func main() {
	cmd.Execute()
}
