package domain

// Package is one raw sensor package as delivered by the tracker.
type Package struct {
	WorkoutType string
	Data        []float64
}

// Result pairs a package with its computed metrics or the error that prevented them.
type Result struct {
	Package Package
	Info    InfoMessage
	Err     error
}

// Summarize computes metrics for each package in order. When abort is set it stops after the
// first failing package, which is still included in the returned results.
func Summarize(packages []Package, abort bool) []Result {
	results := make([]Result, 0, len(packages))
	for _, pkg := range packages {
		workout, err := ReadPackage(pkg.WorkoutType, pkg.Data)
		if err != nil {
			results = append(results, Result{Package: pkg, Err: err})
			if abort {
				break
			}
			continue
		}
		results = append(results, Result{Package: pkg, Info: workout.TrainingInfo()})
	}
	return results
}
