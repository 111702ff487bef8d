package main

import "github.com/wfriedl/PE200/cmd/pe200/cmd"

func main() {
	cmd.Execute()
}
