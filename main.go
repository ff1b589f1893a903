package main

import "github.com/timemedia/adlibrary/cmd"

func main() {
	cmd.Execute()
}
