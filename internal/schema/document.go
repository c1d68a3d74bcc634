package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DocumentSampleSize bounds how many documents per collection are
	// inspected when inferring a collection's fields.
	DocumentSampleSize = 20

	// documentDepthCap bounds recursive descent into nested documents.
	// Deeper structure is reported as a plain object field.
	documentDepthCap = 3
)

// NormalizeDocuments infers a Table from a bounded sample of documents.
// Field names are unioned across the sample; nested fields use dotted
// paths. A field's type is the most frequently observed runtime type, with
// minority types listed as a parenthetical variant. A field absent from
// any sampled document is nullable. Empty collections keep a single
// sentinel column so they still appear in the schema.
func NormalizeDocuments(collection string, rowCount int64, docs []map[string]interface{}) Table {
	t := Table{
		Name:     collection,
		Kind:     KindCollection,
		RowCount: &rowCount,
	}

	if len(docs) == 0 {
		zero := int64(0)
		t.RowCount = &zero
		t.Columns = []Column{{
			Name:     "_id",
			RawType:  "unknown (empty collection)",
			Nullable: true,
		}}
		return t
	}

	if len(docs) > DocumentSampleSize {
		docs = docs[:DocumentSampleSize]
	}

	fields := newFieldSet()
	for _, doc := range docs {
		walkDocument(fields, "", doc, 1)
	}

	for _, path := range fields.order {
		obs := fields.byPath[path]
		t.Columns = append(t.Columns, Column{
			Name:       path,
			RawType:    obs.describe(),
			Nullable:   obs.seen < len(docs),
			PrimaryKey: path == "_id",
		})
	}
	return t
}

type fieldObservation struct {
	seen      int
	types     map[string]int
	typeOrder []string
	maxItems  int // for array fields
}

type fieldSet struct {
	byPath map[string]*fieldObservation
	order  []string
}

func newFieldSet() *fieldSet {
	return &fieldSet{byPath: make(map[string]*fieldObservation)}
}

func (fs *fieldSet) observe(path, typeName string, items int) {
	obs, ok := fs.byPath[path]
	if !ok {
		obs = &fieldObservation{types: make(map[string]int)}
		fs.byPath[path] = obs
		fs.order = append(fs.order, path)
	}
	obs.seen++
	if _, ok := obs.types[typeName]; !ok {
		obs.typeOrder = append(obs.typeOrder, typeName)
	}
	obs.types[typeName]++
	if items > obs.maxItems {
		obs.maxItems = items
	}
}

// describe elects the majority type and appends minority variants.
func (o *fieldObservation) describe() string {
	best := ""
	for _, name := range o.typeOrder {
		if best == "" || o.types[name] > o.types[best] {
			best = name
		}
	}
	if best == "array" {
		best = fmt.Sprintf("array(%d)", o.maxItems)
	}
	var variants []string
	for _, name := range o.typeOrder {
		if name != best && !strings.HasPrefix(best, name) {
			variants = append(variants, name)
		}
	}
	if len(variants) > 0 {
		return fmt.Sprintf("%s (also: %s)", best, strings.Join(variants, ", "))
	}
	return best
}

func walkDocument(fs *fieldSet, prefix string, doc map[string]interface{}, depth int) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys) // map order is random; keep output stable

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		v := doc[k]
		typeName, items := runtimeType(v)
		fs.observe(path, typeName, items)

		if nested, ok := asDocument(v); ok && depth < documentDepthCap {
			walkDocument(fs, path, nested, depth+1)
		}
	}
}

func asDocument(v interface{}) (map[string]interface{}, bool) {
	switch d := v.(type) {
	case map[string]interface{}:
		return d, true
	case primitive.M:
		return map[string]interface{}(d), true
	case primitive.D:
		m := make(map[string]interface{}, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

// runtimeType names the observed BSON/Go type; arrays report their length
// instead of being expanded element by element.
func runtimeType(v interface{}) (string, int) {
	switch val := v.(type) {
	case nil:
		return "null", 0
	case string:
		return "string", 0
	case bool:
		return "bool", 0
	case int, int32:
		return "int", 0
	case int64:
		return "long", 0
	case float32, float64:
		return "double", 0
	case primitive.ObjectID:
		return "objectId", 0
	case primitive.DateTime, time.Time:
		return "date", 0
	case primitive.Decimal128:
		return "decimal", 0
	case primitive.Binary:
		return "binData", 0
	case primitive.A:
		return "array", len(val)
	case []interface{}:
		return "array", len(val)
	case map[string]interface{}, primitive.M, primitive.D:
		return "object", 0
	default:
		return fmt.Sprintf("%T", v), 0
	}
}
