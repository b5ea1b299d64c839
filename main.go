package main

import "fleet-report/cmd"

func main() {
	cmd.Execute()
}
