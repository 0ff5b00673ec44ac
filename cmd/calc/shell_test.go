package main

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// script is a prompter that answers with canned lines, then io.EOF.
type script struct {
	lines []string
	asked []string
}

func (s *script) Prompt(prompt string) (string, error) {
	s.asked = append(s.asked, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func TestCollect(t *testing.T) {
	var out strings.Builder
	sh := &shell{vars: map[string]float64{"r": 2}, digits: 4, out: &out}
	p := &script{lines: []string{"abc", "", " 30 "}}
	vars, err := sh.collect(p, "sin(angle) * r + r / angle")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"r": 2, "angle": 30}
	if !reflect.DeepEqual(want, vars) {
		t.Errorf("want %v, got %v", want, vars)
	}
	if len(p.asked) != 3 {
		t.Errorf("want 3 prompts, got %q", p.asked)
	}
	for _, q := range p.asked {
		if !strings.Contains(q, "angle") {
			t.Errorf("prompt %q doesn't mention angle", q)
		}
	}
	if n := strings.Count(out.String(), "not a number"); n != 2 {
		t.Errorf("want 2 complaints, got %d in %q", n, out.String())
	}
	if _, ok := sh.vars["angle"]; ok {
		t.Error("collect modified the given variables")
	}
}

func TestCollectNothing(t *testing.T) {
	sh := &shell{out: io.Discard}
	p := &script{}
	vars, err := sh.collect(p, "sqrt(16) + log(10) * sin(90)")
	if err != nil {
		t.Fatal(err)
	}
	if len(vars) != 0 {
		t.Errorf("unexpected variables %v", vars)
	}
	if len(p.asked) != 0 {
		t.Errorf("unexpected prompts %q", p.asked)
	}
}

func TestCollectEOF(t *testing.T) {
	sh := &shell{out: io.Discard}
	p := &script{lines: []string{"1"}}
	_, err := sh.collect(p, "x + y")
	if !errors.Is(err, io.EOF) {
		t.Errorf("want EOF, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		vars    map[string]float64
		verbose bool
		out     string
		ok      bool
	}{
		{"sum", "2 + 3", nil, false, "5.0000\n", true},
		{"third", "1 / 3", nil, false, "0.3333\n", true},
		{"combined", "(sin(angle) * 10 + cos(angle) * 5) / (base ^ 2) + sqrt(9)", map[string]float64{"base": 2, "angle": 30}, false, "5.3325\n", true},
		{"div-zero", "5 / 0", nil, false, "arithmetic error\n", false},
		{"domain", "sqrt(-1)", nil, false, "arithmetic error\n", false},
		{"brackets", "(2 + 3", nil, false, "input error\n", false},
		{"undef", "x + 2", nil, false, "input error\n", false},
		{"unknown-func", "tang(45)", nil, false, "input error\n", false},
		{"verbose", "(2 + 3", nil, true, "input error: 1: open bracket ( with no close bracket\n", false},
		{"verbose-arith", "1 / (2 - 2)", nil, true, "arithmetic error: 3: division by zero: 1/0\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out strings.Builder
			sh := &shell{digits: 4, verbose: c.verbose, out: &out}
			if ok := sh.evaluate(c.src, c.vars); ok != c.ok {
				t.Errorf("%q: want ok=%t, got %t", c.src, c.ok, ok)
			}
			if out.String() != c.out {
				t.Errorf("%q: want output %q, got %q", c.src, c.out, out.String())
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		r      float64
		digits int
		want   string
	}{
		{8.5, 4, "8.5000"},
		{1.0 / 3, 4, "0.3333"},
		{2.0 / 3, 4, "0.6667"},
		{-15, 4, "-15.0000"},
		{0, 4, "0.0000"},
		{math.Copysign(0, -1), 4, "0.0000"},
		{2, 0, "2"},
		{math.Pi, 2, "3.14"},
		{1e20, 2, "100000000000000000000.00"},
		{math.NaN(), 4, "NaN"},
		{math.Inf(1), 4, "+Inf"},
		{math.Inf(-1), 4, "-Inf"},
	}
	for _, c := range cases {
		if got := format(c.r, c.digits); got != c.want {
			t.Errorf("format(%g, %d): want %q, got %q", c.r, c.digits, c.want, got)
		}
	}
}

func TestCommand(t *testing.T) {
	var out strings.Builder
	sh := &shell{vars: map[string]float64{"b": 2, "a": 1.5}, digits: 2, out: &out}
	if sh.command(":funcs") {
		t.Error(":funcs exited")
	}
	if sh.command(":vars") {
		t.Error(":vars exited")
	}
	if sh.command(":nonsense") {
		t.Error(":nonsense exited")
	}
	want := "cos log sin sqrt tan\na = 1.50\nb = 2.00\nunknown command. Type :help for commands.\n"
	if out.String() != want {
		t.Errorf("want output %q, got %q", want, out.String())
	}
	if !sh.command(":quit") {
		t.Error(":quit didn't exit")
	}
}

func TestHelp(t *testing.T) {
	var out strings.Builder
	sh := &shell{out: &out}
	if sh.command(":help") {
		t.Error(":help exited")
	}
	for _, cmd := range []string{":funcs", ":vars", ":help", ":quit"} {
		if !strings.Contains(out.String(), cmd) {
			t.Errorf("help doesn't mention %s: %q", cmd, out.String())
		}
	}
}

func TestParseGiven(t *testing.T) {
	cases := []struct {
		s     string
		name  string
		value string
		ok    bool
	}{
		{"x=1", "x", "1", true},
		{" width = 2 * 3 ", "width", "2 * 3", true},
		{"x==1", "x", "=1", true},
		{"x", "", "", false},
		{"=1", "", "", false},
		{"x1=1", "", "", false},
		{"sin=1", "", "", false},
	}
	for _, c := range cases {
		name, value, err := parseGiven(c.s)
		if (err == nil) != c.ok {
			t.Errorf("%q: want ok=%t, got error %v", c.s, c.ok, err)
			continue
		}
		if name != c.name || value != c.value {
			t.Errorf("%q: want %q=%q, got %q=%q", c.s, c.name, c.value, name, value)
		}
	}
}

func TestLoadVars(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("width: 5\nheight: 3.5\nangle: -30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := loadVars(good)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"width": 5, "height": 3.5, "angle": -30}
	if !reflect.DeepEqual(want, m) {
		t.Errorf("want %v, got %v", want, m)
	}

	bad := []string{
		"width: five\n",
		"x1: 1\n",
		"log: 2\n",
		"- 1\n- 2\n",
	}
	for _, src := range bad {
		if m, err := parseVars([]byte(src)); err == nil {
			t.Errorf("%q: want error, got %v", src, m)
		}
	}
	if _, err := loadVars(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file gave no error")
	}
}
