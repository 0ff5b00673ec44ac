package calc_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/calc"
)

func ExampleCalculate() {
	vars := map[string]float64{"base": 2, "angle": 30}
	r, err := calc.Calculate("(sin(angle) * 10 + cos(angle) * 5) / (base ^ 2) + sqrt(9)", vars)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f\n", r)

	_, err = calc.Calculate("1 / (2 - 2)", nil)
	fmt.Println(errors.Is(err, calc.ErrDivisionByZero), err)

	// Output:
	// 5.3325
	// true 3: division by zero: 1/0
}

func ExampleVars() {
	for _, name := range calc.Vars("sqrt(x) + x * y - sin(angle)") {
		fmt.Println(name)
	}

	// Output:
	// x
	// y
	// angle
}
