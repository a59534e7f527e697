package main

import "github.com/ridoystarlord/lifeplan/cmd"

func main() {
	cmd.Execute()
}
