package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"example.com/trainer/internal/config"
	"example.com/trainer/internal/domain"
	"example.com/trainer/internal/report"
)

var samplePackages = []domain.Package{
	{WorkoutType: domain.CodeSwimming, Data: []float64{720, 1, 80, 25, 40}},
	{WorkoutType: domain.CodeRunning, Data: []float64{15000, 1, 75}},
	{WorkoutType: domain.CodeWalking, Data: []float64{9000, 1, 75, 180}},
}

func main() {
	cfg := config.Load()

	if failed := run(os.Stdout, samplePackages, cfg.AbortOnError); failed > 0 {
		if cfg.AbortOnError {
			log.Fatalf("batch aborted after rejected package")
		}
		log.Printf("%d package(s) rejected", failed)
	}
}

// run prints one summary line per package and reports rejected packages through the
// standard logger. It returns the number of rejected packages.
func run(out io.Writer, packages []domain.Package, abort bool) int {
	failed := 0
	for _, result := range domain.Summarize(packages, abort) {
		if result.Err != nil {
			failed++
			log.Printf("rejected package %q: %v", result.Package.WorkoutType, result.Err)
			continue
		}
		fmt.Fprintln(out, report.Format(result.Info))
	}
	return failed
}
