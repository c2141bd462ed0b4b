package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ezrec/cyclesim/cpu"
	"github.com/ezrec/cyclesim/gen"
	"github.com/ezrec/cyclesim/simulator"
)

func main() {
	var load string
	var script string
	var generate bool
	var rate time.Duration
	var steps int
	var setPc int
	var verbose bool
	var showTrace bool
	var dump bool

	flag.StringVar(&load, "l", "", "program file to load")
	flag.StringVar(&script, "g", "", "Starlark generator script to run")
	flag.BoolVar(&generate, "G", false, "use the built-in program generator")
	flag.DurationVar(&rate, "r", 0, "delay between stages (0 = free-run)")
	flag.IntVar(&steps, "n", 0, "maximum stages to run (0 = until halt)")
	flag.IntVar(&setPc, "p", 0, "initial program counter override")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&showTrace, "t", false, "print the execution trace on exit")
	flag.BoolVar(&dump, "d", false, "dump final machine state")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	sim := simulator.NewSimulator()
	sim.Verbose = verbose

	var prog *cpu.Program
	var err error
	switch {
	case len(load) != 0:
		inf, oerr := os.Open(load)
		if oerr != nil {
			log.Fatalf("%v: %v", load, oerr)
		}
		defer inf.Close()
		prog, err = cpu.Read(inf)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	case len(script) != 0:
		text, rerr := os.ReadFile(script)
		if rerr != nil {
			log.Fatalf("%v: %v", script, rerr)
		}
		source := &gen.Scripted{Name: script, Script: string(text), Defines: sim.Defines()}
		prog, err = source.Generate()
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	case generate:
		source := &gen.Fallback{}
		prog, err = source.Generate()
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("%v: no program; use -l, -g, or -G", os.Args[0])
	}

	sim.Load(prog)

	if setPc != 0 {
		err = sim.SetPc(setPc)
		if err != nil {
			log.Fatalf("pc %v: %v", setPc, err)
		}
	}

	for n := 0; steps <= 0 || n < steps; n++ {
		outcome, serr := sim.Step()
		if serr != nil {
			log.Printf("%v", serr)
		}
		if outcome != cpu.CONTINUED {
			break
		}
		if rate > 0 {
			time.Sleep(rate)
		}
	}

	if dump {
		fmt.Print(sim.Cpu.String())
	}

	if showTrace {
		fmt.Println(sim.TraceText())
	}
}
