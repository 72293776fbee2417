package main

import (
	"flag"
	"log"
	"os"

	"github.com/dbasin5/e20/cpu"
	"github.com/dbasin5/e20/simulator"
)

func main() {
	var assemble bool
	var verbose bool
	var memquantity int

	flag.BoolVar(&assemble, "a", false, "Treat the input as E20 assembly source")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&memquantity, "m", simulator.MEM_QUANTITY, "Memory words in the final state")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one machine code file, got: %v", os.Args[0], flag.Args())
	}
	filename := flag.Arg(0)

	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	defer inf.Close()

	sim := simulator.NewSimulator()
	sim.Verbose = verbose
	sim.MemQuantity = memquantity

	if assemble {
		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
		err = sim.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
	} else {
		err = sim.LoadMachineCode(inf)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
	}

	err = sim.Run()
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	err = sim.WriteState(os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
}
