package main

import (
	"flag"
	"log"
	"os"

	"github.com/dbasin5/e20/cpu"
)

func main() {
	var output string
	var verbose bool

	flag.StringVar(&output, "o", "-", "Machine code output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one assembly source file, got: %v", os.Args[0], flag.Args())
	}
	filename := flag.Arg(0)

	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	err = prog.WriteMachineCode(ouf)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
