package langdef

// MessageSet holds a Language Model's localized diagnostic strings: five
// fixed-size error-message groups (sized 7, 2, 9, 1, 2, matching the
// canonical text format's field counts) and a parallel, currently-always-
// empty set of warning groups. Lookup is by (group, index), mirroring the
// two-byte error codes in §7.
type MessageSet struct {
	E00 [7]string
	E01 [2]string
	E02 [9]string
	E03 [1]string
	E04 [2]string

	W00 []string
	W01 []string
	W02 []string
	W03 []string
	W04 []string
}

// Error looks up an error message by (group, index), where group is 0..4.
// It panics on an out-of-range group, mirroring the fixed, closed shape of
// the canonical format — a caller passing an invalid group is a programmer
// error, not a data error.
func (m MessageSet) Error(group, index int) string {
	switch group {
	case 0:
		return m.E00[index]
	case 1:
		return m.E01[index]
	case 2:
		return m.E02[index]
	case 3:
		return m.E03[index]
	case 4:
		return m.E04[index]
	default:
		panic("langdef: error group out of range")
	}
}

// Warning looks up a warning message by (group, index); all five groups
// are currently zero-length, so every call with a well-formed MessageSet
// panics unless a future language definition populates one.
func (m MessageSet) Warning(group, index int) string {
	groups := [][]string{m.W00, m.W01, m.W02, m.W03, m.W04}
	if group < 0 || group >= len(groups) {
		panic("langdef: warning group out of range")
	}
	return groups[group][index]
}
