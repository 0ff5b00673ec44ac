package calc

import (
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals, possibly restricted to a domain.
type Func struct {
	name string
	f    func(float64) float64
	// in reports whether an argument is inside the domain. nil means every
	// argument is.
	in func(float64) bool
}

// Name returns the name the function is called by.
func (fn Func) Name() string {
	return fn.name
}

// Call evaluates the function. If x is outside the function's domain, the
// error is a *DomainError.
func (fn Func) Call(x float64) (float64, error) {
	if fn.in != nil && !fn.in(x) {
		return 0, &DomainError{X: x, Func: fn.name}
	}
	return fn.f(x), nil
}

// degree is π/180 at 128 bits.
var degree = func() *big.Float {
	var pi big.Float
	pi.SetPrec(128)
	bigfloat.Pi(&pi)
	return pi.Quo(&pi, new(big.Float).SetPrec(128).SetInt64(180))
}()

// radians converts an angle in degrees to radians. The product is computed at
// 128 bits and rounded once, so e.g. 180 converts to exactly math.Pi.
func radians(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	var r big.Float
	r.SetPrec(128).SetFloat64(x)
	r.Mul(&r, degree)
	f, _ := r.Float64()
	return f
}

func degrees(f func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		return f(radians(x))
	}
}

var globalfuncs = map[string]Func{
	"sin":  {name: "sin", f: degrees(math.Sin)},
	"cos":  {name: "cos", f: degrees(math.Cos)},
	"tan":  {name: "tan", f: degrees(math.Tan)},
	"sqrt": {name: "sqrt", f: math.Sqrt, in: func(x float64) bool { return x >= 0 }},
	"log":  {name: "log", f: math.Log, in: func(x float64) bool { return x > 0 }},
}

// Lookup returns the function with the given name. Names are case-sensitive.
// If there is no such function, the error is an *UnknownFuncError.
func Lookup(name string) (Func, error) {
	fn, ok := globalfuncs[name]
	if !ok {
		return Func{}, &UnknownFuncError{Name: name}
	}
	return fn, nil
}

// IsFunction returns whether name names a function rather than a variable.
func IsFunction(name string) bool {
	_, ok := globalfuncs[name]
	return ok
}

// Apply calls the named function on x.
func Apply(name string, x float64) (float64, error) {
	fn, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return fn.Call(x)
}

// Funcs returns the names of all functions in sorted order.
func Funcs() []string {
	r := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// DomainError is an error returned when a function is called on an argument
// outside its domain. It is an arithmetic error, so it records the call's
// position in Col but does not implement InputError.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the name of the function.
	Func string
	// Col is the position of the call, or 0 if the function was called
	// directly.
	Col int
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Func
	if err.Col > 0 {
		return errpos(err.Col, r)
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// UnknownFuncError is an error indicating a call to a function that does not
// exist. It implements InputError.
type UnknownFuncError struct {
	// Name is the name that was called.
	Name string
	// Col is the position of the call, or 0 if the lookup was direct.
	Col int
}

func (err *UnknownFuncError) Error() string {
	r := "unknown function " + strconv.Quote(err.Name)
	if err.Col > 0 {
		return errpos(err.Col, r)
	}
	return r
}

func (err *UnknownFuncError) Pos() int {
	return err.Col
}

func (err *UnknownFuncError) Unwrap() error {
	return ErrUnknownFunction
}
