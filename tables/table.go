package tables

/*
Table is an immutable column-oriented table. All methods changing
the table return a new one sharing unchanged columns.
*/
type Table struct {
	cols  []*Column
	index map[string]int
}

/*
New creates a table from columns of the same length
*/
func New(cols ...*Column) (*Table, error) {
	t := &Table{cols: make([]*Column, 0, len(cols)), index: map[string]int{}}
	for _, c := range cols {
		if _, ok := t.index[c.Name]; ok {
			return nil, errorf("duplicate column `%v`", c.Name)
		}
		if len(t.cols) > 0 && c.Len() != t.cols[0].Len() {
			return nil, errorf("column `%v` has %d rows, table has %d", c.Name, c.Len(), t.cols[0].Len())
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	return t, nil
}

/*
LuckyNew creates a new table and panics on error
*/
func LuckyNew(cols ...*Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

/*
Len returns count of rows
*/
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

/*
Width returns count of columns
*/
func (t *Table) Width() int {
	return len(t.cols)
}

func (t *Table) Names() []string {
	r := make([]string, len(t.cols))
	for i, c := range t.cols {
		r[i] = c.Name
	}
	return r
}

func (t *Table) Columns() []*Column {
	r := make([]*Column, len(t.cols))
	copy(r, t.cols)
	return r
}

/*
Lookup returns column by name
*/
func (t *Table) Lookup(name string) (*Column, bool) {
	if i, ok := t.index[name]; ok {
		return t.cols[i], true
	}
	return nil, false
}

/*
Col returns column by name or an error wrapping ErrNoColumn
*/
func (t *Table) Col(name string) (*Column, error) {
	if c, ok := t.Lookup(name); ok {
		return c, nil
	}
	return nil, noColumn(name)
}

/*
Has checks all named columns exist
*/
func (t *Table) Has(names ...string) error {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return noColumn(n)
		}
	}
	return nil
}

/*
Except returns the table without named columns
*/
func (t *Table) Except(names ...string) *Table {
	skip := map[string]bool{}
	for _, n := range names {
		skip[n] = true
	}
	cols := make([]*Column, 0, len(t.cols))
	for _, c := range t.cols {
		if !skip[c.Name] {
			cols = append(cols, c)
		}
	}
	return LuckyNew(cols...)
}

/*
Only returns the table with named columns in the specified order
*/
func (t *Table) Only(names ...string) (*Table, error) {
	cols := make([]*Column, len(names))
	for i, n := range names {
		c, err := t.Col(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return New(cols...)
}

/*
With returns the table with the column replaced or appended if there is no column with the same name
*/
func (t *Table) With(col *Column) (*Table, error) {
	cols := t.Columns()
	if i, ok := t.index[col.Name]; ok {
		cols[i] = col
	} else {
		cols = append(cols, col)
	}
	return New(cols...)
}

/*
Subset returns a table containing specified rows in the specified order
*/
func (t *Table) Subset(rows []int) *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.subset(rows)
	}
	return LuckyNew(cols...)
}

/*
Filter returns a table containing rows matching predicate
*/
func (t *Table) Filter(f func(i int) bool) *Table {
	rows := []int{}
	for i := 0; i < t.Len(); i++ {
		if f(i) {
			rows = append(rows, i)
		}
	}
	return t.Subset(rows)
}

/*
Concat appends rows of another table with the same columns.
Categorical cells are remapped by level names.
*/
func (t *Table) Concat(o *Table) (*Table, error) {
	if o.Width() != t.Width() {
		return nil, errorf("can't concat table of %d columns to table of %d columns", o.Width(), t.Width())
	}
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		x, err := o.Col(c.Name)
		if err != nil {
			return nil, err
		}
		if x.Kind != c.Kind {
			return nil, errorf("column `%v` is %v in one table and %v in another", c.Name, c.Kind, x.Kind)
		}
		data := make([]float64, 0, c.Len()+x.Len())
		data = append(data, c.Data...)
		levels := c.Levels
		if c.Kind == Category {
			levels = append([]string{}, c.Levels...)
			for j := range x.Data {
				l := x.Levels[int(x.Data[j])]
				k := indexOf(levels, l)
				if k < 0 {
					k = len(levels)
					levels = append(levels, l)
				}
				data = append(data, float64(k))
			}
		} else {
			data = append(data, x.Data...)
		}
		cols[i] = &Column{Name: c.Name, Kind: c.Kind, Levels: levels, Data: data}
	}
	return New(cols...)
}

func indexOf(a []string, s string) int {
	for i, x := range a {
		if x == s {
			return i
		}
	}
	return -1
}
