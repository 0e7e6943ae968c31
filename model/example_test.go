package model_test

import (
	"fmt"

	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
)

func Example() {
	values := []float64{3, 5, 1, 2, 0, 4}

	m, err := model.FromFit(values, pava.UnitWeights(len(values)), pava.Increasing, 3)
	if err != nil {
		fmt.Println("fit:", err)
		return
	}

	blob, err := model.Encode(m, model.WithCompression(format.CompressionS2))
	if err != nil {
		fmt.Println("encode:", err)
		return
	}

	decoded, err := model.Decode(blob)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	v, _ := decoded.Predict(4)
	fmt.Println(decoded.Regression().Values, decoded.Center, v)
	// Output: [4 4 1 1 1 4] 3 1
}
