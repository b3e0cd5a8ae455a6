package main

import "github.com/arivarton/stamp/cmd"

func main() {
	cmd.Execute()
}
