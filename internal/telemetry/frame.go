package telemetry

// Frame is one run's telemetry table: the original columns exactly as read,
// plus any derived numeric columns appended by the pipeline. Raw cells are
// never mutated; derivation produces new columns on a copy.
type Frame struct {
	Columns []string
	Rows    [][]string

	derivedNames  []string
	derivedValues map[string][]Float
}

// NewFrame builds a frame from a header and rows. Short rows are padded with
// empty cells so every row spans the header.
func NewFrame(columns []string, rows [][]string) *Frame {
	frame := &Frame{
		Columns: append([]string{}, columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		padded := make([]string, len(columns))
		copy(padded, row)
		frame.Rows = append(frame.Rows, padded)
	}
	return frame
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Column returns the raw cells of a named original column.
func (f *Frame) Column(name string) ([]string, bool) {
	for i, col := range f.Columns {
		if col != name {
			continue
		}
		cells := make([]string, f.Len())
		for j, row := range f.Rows {
			if i < len(row) {
				cells[j] = row[i]
			}
		}
		return cells, true
	}
	return nil, false
}

// FloatColumn parses a named original column into Floats; unparsable cells
// come back invalid. The second result reports whether the column exists.
func (f *Frame) FloatColumn(name string) ([]Float, bool) {
	cells, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	values := make([]Float, len(cells))
	for i, cell := range cells {
		values[i] = ParseFloat(cell)
	}
	return values, true
}

// Clone returns a frame sharing no storage with the receiver.
func (f *Frame) Clone() *Frame {
	clone := NewFrame(f.Columns, f.Rows)
	for _, name := range f.derivedNames {
		clone.SetDerived(name, f.derivedValues[name])
	}
	return clone
}

// SetDerived attaches (or replaces) a derived column. Column order follows
// first insertion.
func (f *Frame) SetDerived(name string, values []Float) {
	if f.derivedValues == nil {
		f.derivedValues = make(map[string][]Float)
	}
	if _, exists := f.derivedValues[name]; !exists {
		f.derivedNames = append(f.derivedNames, name)
	}
	f.derivedValues[name] = append([]Float{}, values...)
}

// Derived returns a derived column by name.
func (f *Frame) Derived(name string) ([]Float, bool) {
	values, ok := f.derivedValues[name]
	return values, ok
}

// DerivedNames lists derived columns in insertion order.
func (f *Frame) DerivedNames() []string {
	return append([]string{}, f.derivedNames...)
}
