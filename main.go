package main

import "github.com/mindflowapp/mindflow/cmd"

func main() {
	cmd.Execute()
}
