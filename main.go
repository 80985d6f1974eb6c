package main

import "hkds/cmd"

func main() {
	cmd.Execute()
}
