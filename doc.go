// Package calc implements a small floating-point calculator.
//
// Expressions are the kind you would type into a pocket calculator: numbers,
// variables, the operators + - * / ^, parentheses, and the functions sin, cos,
// tan, sqrt, and log. Trigonometric functions take their arguments in degrees.
// "2 * 3 ^ 2" is 18, and "^" groups to the left like every other operator, so
// "2^3^2" is 64.
//
// Function arguments are a single number or variable name: "sqrt(x)" and
// "sin(90)" work, but "sqrt(x+1)" and "sin(cos(0))" do not.
package calc
