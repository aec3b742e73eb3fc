package main

import "github.com/akashicode/pdftext/cmd"

func main() {
	cmd.Execute()
}
