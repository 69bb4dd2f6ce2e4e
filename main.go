package main

import "github.com/mouse-blink/bigo/cmd"

func main() {
	cmd.Execute()
}
