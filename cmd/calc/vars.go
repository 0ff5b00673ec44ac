package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// loadVars reads variable definitions from a YAML mapping of names to
// numbers.
func loadVars(name string) (map[string]float64, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	m, err := parseVars(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

func parseVars(b []byte) (map[string]float64, error) {
	var m map[string]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for k := range m {
		if err := checkName(k); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// checkName checks that a name can be used as a variable.
func checkName(name string) error {
	if name == "" {
		return errors.New("empty variable name")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("variable name %q must contain only letters", name)
		}
	}
	if calc.IsFunction(name) {
		return fmt.Errorf("variable name %q is a function", name)
	}
	return nil
}

func sortedNames(m map[string]float64) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
