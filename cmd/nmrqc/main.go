// nmrqc - quality control for quantitative NMR metabolomics spectra
package main

import (
	"fmt"
	"os"

	"github.com/nmrqc/nmrqc/cmd/nmrqc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
