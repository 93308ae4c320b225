package dataset

// Dataset is an ordered sequence of rows conforming to a shared Schema.
// Rows are stored against stable column ids, so columns discovered (or
// inserted before an anchored column) later in the run never misalign rows
// appended earlier; projection pads missing columns with Absent.
type Dataset struct {
	schema *Schema
	rows   [][]Value // indexed by stable column id
}

// New creates an empty dataset over the given schema. A nil schema gets a
// fresh empty one.
func New(schema *Schema) *Dataset {
	if schema == nil {
		schema = NewSchema()
	}
	return &Dataset{schema: schema}
}

// Schema returns the dataset's schema.
func (d *Dataset) Schema() *Schema {
	return d.schema
}

// Headers returns the unified column names in schema order.
func (d *Dataset) Headers() []string {
	return d.schema.Columns()
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// AppendTable reconciles a parsed table's headers into the schema and
// appends its rows in order. Cells land under their column's identity;
// schema columns missing from this table stay Absent.
func (d *Dataset) AppendTable(headers []string, rows [][]Value) error {
	ids, err := d.schema.AddAll(headers)
	if err != nil {
		return err
	}
	for _, src := range rows {
		row := make([]Value, len(d.schema.names))
		for i := range row {
			row[i] = Absent
		}
		for i, id := range ids {
			if i < len(src) {
				row[id] = src[i]
			}
		}
		d.rows = append(d.rows, row)
	}
	return nil
}

// Row returns row i projected onto the current schema order.
func (d *Dataset) Row(i int) []Value {
	src := d.rows[i]
	row := make([]Value, d.schema.Len())
	for pos := range row {
		row[pos] = cellByID(src, d.schema.idAt(pos))
	}
	return row
}

// Rows returns every row projected onto the current schema, in append order.
func (d *Dataset) Rows() [][]Value {
	out := make([][]Value, len(d.rows))
	for i := range d.rows {
		out[i] = d.Row(i)
	}
	return out
}

// Cell returns the value at row i, display column pos.
func (d *Dataset) Cell(i, pos int) Value {
	return cellByID(d.rows[i], d.schema.idAt(pos))
}

// SetCell overwrites the value at row i, display column pos.
func (d *Dataset) SetCell(i, pos int, v Value) {
	id := d.schema.idAt(pos)
	src := d.rows[i]
	if id >= len(src) {
		grown := make([]Value, len(d.schema.names))
		for j := range grown {
			grown[j] = cellByID(src, j)
		}
		d.rows[i] = grown
		src = grown
	}
	src[id] = v
}

// AddColumn appends a new column with one value per row, returning its
// display position. Used to stamp provenance and assigned core identifiers
// onto aggregated data.
func (d *Dataset) AddColumn(name string, values []Value) (int, error) {
	pos, err := d.schema.Add(name)
	if err != nil {
		return 0, err
	}
	for i := range d.rows {
		v := Absent
		if i < len(values) {
			v = values[i]
		}
		d.SetCell(i, pos, v)
	}
	return pos, nil
}

// Records renders the dataset as raw string records in schema order, absent
// cells as empty strings. This is the shape handed to exporters.
func (d *Dataset) Records() [][]string {
	out := make([][]string, len(d.rows))
	for i := range d.rows {
		row := d.Row(i)
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.Raw()
		}
		out[i] = rec
	}
	return out
}

func cellByID(row []Value, id int) Value {
	if id < len(row) {
		return row[id]
	}
	return Absent
}
