package diskage_test

import (
	"fmt"

	"github.com/cwbudde/algo-diskage"
	"go.uber.org/zap"
)

func ExampleEstimate() {
	fmt.Printf("age = %.3f Myr\n", diskage.Estimate(0))
	// Output: age = 0.585 Myr
}

func ExampleEstimator_EstimateAll() {
	est, err := diskage.NewEstimator(diskage.WithLogger(zap.NewNop()))
	if err != nil {
		panic(err)
	}
	for _, age := range est.EstimateAll([]float64{-1, 0, 1}) {
		fmt.Printf("%.2f ", age)
	}
	fmt.Println()
	// Output: 1.80 0.58 0.20
}
