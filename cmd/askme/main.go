package main

import "askme/cmd/askme/cmd"

func main() {
	cmd.Execute()
}
