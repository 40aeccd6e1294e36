package main

import (
	"os"

	"github.com/Doomsbay/FastaKit/fastakit/cmd"
)

func main() {
	cmd.Execute(os.Args[1:])
}
