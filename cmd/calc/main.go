package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		varsname, histname string
		given              [][2]string
		digits             int
		verbose            bool
	)
	addgiven := func(s string) error {
		nm, vl, err := parseGiven(s)
		if err != nil {
			return err
		}
		given = append(given, [2]string{nm, vl})
		return nil
	}
	flag.StringVar(&varsname, "vars", "", "YAML file of name: value variable definitions")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.IntVar(&digits, "digits", 4, "digits after the decimal point in results")
	flag.StringVar(&histname, "history", defaultHistory(), "file to keep interactive history in")
	flag.BoolVar(&verbose, "v", false, "describe errors in detail")
	flag.Parse()
	if digits < 0 {
		log.Fatalf("digits (%d) must not be negative", digits)
	}

	vars := make(map[string]float64)
	if varsname != "" {
		m, err := loadVars(varsname)
		if err != nil {
			log.Fatal(err)
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	// Definitions can refer to earlier ones.
	for _, d := range given {
		r, err := calc.Calculate(d[1], vars)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		vars[d[0]] = r
	}

	sh := &shell{vars: vars, digits: digits, verbose: verbose, out: os.Stdout}
	if flag.NArg() == 0 {
		os.Exit(repl(sh, histname))
	}
	code := 0
	for _, arg := range flag.Args() {
		if !sh.evaluate(arg, vars) {
			code = 1
		}
	}
	os.Exit(code)
}

// parseGiven splits a name=value definition.
func parseGiven(s string) (name, value string, err error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", "", fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name = strings.TrimSpace(d[0])
	if err := checkName(name); err != nil {
		return "", "", err
	}
	return name, strings.TrimSpace(d[1]), nil
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calc_history")
}
