package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SiccarPoint/child"
	"github.com/SiccarPoint/child/input"
	"github.com/maseology/mmio"
)

func main() {
	fp := "child.in"
	if len(os.Args) > 1 {
		fp = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	f, err := input.Read(fp)
	if err != nil {
		log.Fatalf(" %v", err)
	}
	dom, err := child.NewDomain(f)
	if err != nil {
		log.Fatalf(" %v", err)
	}
	tt.Print("Domain build complete\n")

	outdir := f.Text("OUTDIR")
	if outdir == "" {
		outdir = "out/"
	}
	dom.Run(outdir)
	dom.WriteSummary(outdir)
}
