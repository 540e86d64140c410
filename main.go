package main

import "github.com/KaramelBytes/gdpfit/cmd"

func main() {
	cmd.Execute()
}
