package main

import "github.com/aqsawaikar-droid/CloudWhisper/cmd"

func main() {
	cmd.Execute()
}
