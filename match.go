package molweight

// matchGroups pairs the formula's brackets in one pass. For each open
// bracket, the result holds the index of its matching close bracket, or -1
// if the tokens end before the group does. Entries for other tokens are -1.
func (f *Formula) matchGroups() []int {
	closes := make([]int, len(f.toks))
	var opens []int
	for i, tok := range f.toks {
		closes[i] = -1
		switch tok.kind {
		case tokenOpen:
			opens = append(opens, i)
		case tokenClose:
			// A close with no open is left for the evaluator to report.
			if len(opens) > 0 {
				closes[opens[len(opens)-1]] = i
				opens = opens[:len(opens)-1]
			}
		}
	}
	return closes
}
