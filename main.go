package main

import "github.com/zenonrecon/chainrecon/cmd"

func main() {
	cmd.Execute()
}
