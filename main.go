package main

import (
	"danmu-hub/cmd"
)

func main() {
	cmd.Execute()
}
