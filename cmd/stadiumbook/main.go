package main

import "github.com/example/stadium-booking/cmd"

func main() {
	cmd.Execute()
}
