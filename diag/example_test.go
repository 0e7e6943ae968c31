package diag_test

import (
	"fmt"

	"github.com/arloliu/isotonic/diag"
	"github.com/arloliu/isotonic/pava"
)

func ExampleSummarize() {
	values := []float64{1, 3, 2}
	weights := []float64{1, 1, 1}
	r := pava.MustRegress(values, weights, pava.Increasing)

	s, err := diag.Summarize(values, weights, r)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("pools=%d sse=%.2f r2=%.2f\n", s.Pools, s.WeightedSSE, s.RSquared)
	fmt.Println(diag.Verify(values, weights, r, pava.Increasing))
	// Output:
	// pools=2 sse=0.50 r2=0.75
	// <nil>
}
