package main

import "github.com/Leochin1206/GeraApp/cmd"

func main() {
	cmd.Execute()
}
