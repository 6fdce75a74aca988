package main

import "github.com/loxbytes/corelox/cmd"

func main() {
	cmd.App().Execute()
}
