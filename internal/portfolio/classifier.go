package portfolio

import "strings"

// RowKind is the classifier's verdict on a single row.
type RowKind int

const (
	// RowSkip rows change nothing: blank labels, subtotal lines, data rows
	// with an empty discriminator.
	RowSkip RowKind = iota
	// RowSectionHeader opens a category; the row itself is never a holding.
	RowSectionHeader
	// RowTotal is a printed category-total line; its market value feeds the
	// current category's accumulator.
	RowTotal
	// RowData is an ordinary holding row.
	RowData
	// RowTerminal ends the table; everything after it is ignored.
	RowTerminal
)

// State is the section tracker carried across rows. Current is the category
// assigned to data rows read while it is active; before the first section
// header it is empty and data rows fall into Others.
type State struct {
	Current    Category
	Terminated bool
}

// CurrentCategory is the category a data row read under this state gets.
func (s State) CurrentCategory() Category {
	if s.Current == "" {
		return CategoryOthers
	}
	return s.Current
}

// ClassifyRow runs one row's label through the profile's rule set and
// returns the updated state. Rules apply in fixed priority: terminal,
// subtotal, total, section header, data. A holding's category reflects the
// state as of its own row and is never corrected retroactively.
func ClassifyRow(st State, p *Profile, rawLabel string) (State, RowKind) {
	if st.Terminated {
		return st, RowSkip
	}
	label := strings.ToLower(strings.TrimSpace(rawLabel))

	if label == "" {
		return st, RowSkip
	}
	if p.MatchTerminal(label) {
		st.Terminated = true
		return st, RowTerminal
	}
	// "Equity Total" must stay a total row even though the "equity" section
	// pattern would prefix-match it, so the total checks run first.
	if strings.Contains(label, "subtotal") {
		return st, RowSkip
	}
	if strings.Contains(label, "total") {
		return st, RowTotal
	}
	if cat, ok := p.MatchSection(label); ok {
		st.Current = cat
		return st, RowSectionHeader
	}
	return st, RowData
}
