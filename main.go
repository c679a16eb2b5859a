package main

import (
	"sheet2sql/cmd"
)

func main() {
	cmd.Execute()
}
