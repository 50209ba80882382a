package cepstral_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/cepstral"
)

func ExampleHzToMel() {
	fmt.Printf("%.1f %.1f\n", cepstral.HzToMel(500), cepstral.HzToMel(1000))
	// Output:
	// 7.5 15.0
}

func ExampleAnalyzer_Analyze() {
	a := cepstral.NewAnalyzer()

	res, err := a.Analyze(make([]float64, 22050), 22050)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(res.Coefficients), res.Frames())
	// Output:
	// 13 44
}
