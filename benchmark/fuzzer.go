package benchmark

import (
	"fmt"
	"math/rand"
	"strings"
)

// Schema defines the structure for generating JSON documents
type Schema struct {
	Name   string  // Schema name
	Fields []Field // Top-level fields
}

// Field defines a field in the schema
type Field struct {
	Name     string  // Field name
	Type     string  // string, number, bool, null, object, array
	Children []Field // For object type
	ItemType string  // For array type: string, number, object
	Items    []Field // For array of objects
}

// Fuzzer generates JSON documents based on a schema. The schemas below are
// tuned to stress a tokenizer rather than a query engine: lots of small
// tokens, escape sequences, and configurable nesting depth.
type Fuzzer struct {
	rng    *rand.Rand
	schema Schema
}

// NewFuzzer creates a new fuzzer with a seed for reproducibility
func NewFuzzer(seed int64, schema Schema) *Fuzzer {
	return &Fuzzer{
		rng:    rand.New(rand.NewSource(seed)),
		schema: schema,
	}
}

// DefaultSchema returns a schema for realistic device/telemetry data
func DefaultSchema() Schema {
	return Schema{
		Name: "readings",
		Fields: []Field{
			{Name: "device", Type: "object", Children: []Field{
				{Name: "id", Type: "string"},
				{Name: "fw", Type: "string"},
				{Name: "rssi", Type: "number"},
			}},
			{Name: "records", Type: "array", ItemType: "object", Items: []Field{
				{Name: "ts", Type: "number"},
				{Name: "value", Type: "number"},
				{Name: "unit", Type: "string"},
				{Name: "ok", Type: "bool"},
				{Name: "note", Type: "string"},
				{Name: "tags", Type: "array", ItemType: "string"},
				{Name: "extra", Type: "null"},
			}},
		},
	}
}

// StringHeavySchema returns a schema dominated by strings with escapes,
// exercising the string sub-scanner
func StringHeavySchema() Schema {
	return Schema{
		Name: "messages",
		Fields: []Field{
			{Name: "records", Type: "array", ItemType: "object", Items: []Field{
				{Name: "from", Type: "string"},
				{Name: "subject", Type: "string"},
				{Name: "body", Type: "string"},
				{Name: "path", Type: "string"},
			}},
		},
	}
}

// Generate creates a JSON document with the specified number of records
func (f *Fuzzer) Generate(recordCount int) []byte {
	var sb strings.Builder
	sb.Grow(recordCount * 200)

	sb.WriteString("{")
	for i, field := range f.schema.Fields {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"%s":`, field.Name)

		if field.Name == "records" && field.Type == "array" {
			f.writeRecordArray(&sb, field.Items, recordCount)
		} else {
			f.writeField(&sb, field, 0)
		}
	}
	sb.WriteString("}")
	return []byte(sb.String())
}

// GenerateDeep creates a document nested to the given depth, ending in a
// single primitive. Exercises the open-container stack.
func (f *Fuzzer) GenerateDeep(depth int) []byte {
	var sb strings.Builder
	sb.Grow(depth*8 + 16)
	for i := 0; i < depth; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, `{"l%d":`, i)
		} else {
			sb.WriteString("[")
		}
	}
	sb.WriteString("0")
	for i := depth - 1; i >= 0; i-- {
		if i%2 == 0 {
			sb.WriteString("}")
		} else {
			sb.WriteString("]")
		}
	}
	return []byte(sb.String())
}

func (f *Fuzzer) writeRecordArray(sb *strings.Builder, itemFields []Field, count int) {
	sb.WriteString("[")
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		f.writeObject(sb, itemFields, i)
	}
	sb.WriteString("]")
}

func (f *Fuzzer) writeField(sb *strings.Builder, field Field, index int) {
	switch field.Type {
	case "string":
		fmt.Fprintf(sb, `"%s"`, f.randomString(field.Name, index))
	case "number":
		fmt.Fprintf(sb, "%v", f.randomNumber(field.Name, index))
	case "bool":
		fmt.Fprintf(sb, "%t", f.rng.Intn(2) == 1)
	case "null":
		sb.WriteString("null")
	case "object":
		f.writeObject(sb, field.Children, index)
	case "array":
		f.writeArray(sb, field, index)
	}
}

func (f *Fuzzer) writeObject(sb *strings.Builder, fields []Field, index int) {
	sb.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(sb, `"%s":`, field.Name)
		f.writeField(sb, field, index)
	}
	sb.WriteString("}")
}

func (f *Fuzzer) writeArray(sb *strings.Builder, field Field, index int) {
	sb.WriteString("[")
	count := 3 + f.rng.Intn(3)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		switch field.ItemType {
		case "string":
			fmt.Fprintf(sb, `"%s%d"`, tags[(index+i)%len(tags)], i)
		case "number":
			fmt.Fprintf(sb, "%d", f.rng.Intn(1000))
		}
	}
	sb.WriteString("]")
}

var (
	units = []string{"C", "F", "hPa", "lux", "ppm", "V", "mA"}
	tags  = []string{"calibrated", "raw", "derived", "suspect", "nightly", "manual"}
	notes = []string{
		`steady reading`,
		`spike after reset\nrechecked twice`,
		`sensor said \"ok\" but drifted`,
		`tab\tseparated\tfields`,
		`unicode point \u00e9 in note`,
	}
	paths = []string{
		`C:\\logs\\device.json`,
		`\/var\/log\/readings`,
		`..\/relative\/path`,
	}
)

func (f *Fuzzer) randomString(fieldName string, index int) string {
	switch fieldName {
	case "id":
		return fmt.Sprintf("dev-%04d", index)
	case "fw":
		return "0.103.1"
	case "unit":
		return units[index%len(units)]
	case "note", "body":
		return notes[index%len(notes)]
	case "path":
		return paths[index%len(paths)]
	case "from":
		return fmt.Sprintf("sensor-%d@local", index)
	case "subject":
		return fmt.Sprintf("reading %d of the day", index)
	default:
		return fmt.Sprintf("%s-%d", fieldName, index)
	}
}

func (f *Fuzzer) randomNumber(fieldName string, index int) interface{} {
	switch fieldName {
	case "ts":
		return 1700000000 + index
	case "value":
		return float64(f.rng.Intn(10000))/100 - 40
	case "rssi":
		return -30 - f.rng.Intn(60)
	default:
		return f.rng.Intn(1000)
	}
}
