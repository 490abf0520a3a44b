/*
Copyright 2024 missola
*/
package main

import "github.com/missola/gt7-lap-engine/cmd"

func main() {
	cmd.Execute()
}
