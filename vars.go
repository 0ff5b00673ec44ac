package calc

import "unicode"

// Vars returns the names in expr that are not function names, in order of
// first appearance and without duplicates. These are the variables that
// Calculate needs values for. Vars does not check that expr is valid.
func Vars(expr string) []string {
	var names []string
	seen := make(map[string]bool)
	rs := []rune(expr)
	for i := 0; i < len(rs); i++ {
		if !unicode.IsLetter(rs[i]) {
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		name := string(rs[i:j])
		i = j - 1
		if seen[name] || IsFunction(name) {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
