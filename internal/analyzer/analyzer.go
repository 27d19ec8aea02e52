package analyzer

import (
	"encoding/json" // for json.Number
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/mcncl/vjp/internal/models"
)

// Time format patterns, most specific first
var (
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)
)

// Summary describes the shape of a parsed document
type Summary struct {
	// Depth is the number of nested container levels; scalars have depth 0
	Depth int

	Objects  int
	Arrays   int
	Strings  int
	Numbers  int
	Booleans int
	Nulls    int

	// Integers and Floats split Numbers by whether the literal fits an int64
	Integers int
	Floats   int

	// Keys is the total number of object members
	Keys int

	// Timestamps counts strings that look like dates or times
	Timestamps int
}

// Fields renders the summary as log fields
func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"depth":      s.Depth,
		"objects":    s.Objects,
		"arrays":     s.Arrays,
		"strings":    s.Strings,
		"numbers":    s.Numbers,
		"booleans":   s.Booleans,
		"nulls":      s.Nulls,
		"integers":   s.Integers,
		"floats":     s.Floats,
		"keys":       s.Keys,
		"timestamps": s.Timestamps,
	}
}

// Analyzer walks a Value tree collecting statistics
type Analyzer struct {
	summary Summary
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns the statistics for v. The analyzer can be reused.
func (a *Analyzer) Analyze(v models.Value) Summary {
	a.summary = Summary{}
	a.summary.Depth = a.analyzeNode(v)
	return a.summary
}

// analyzeNode counts node and its children and returns its depth
func (a *Analyzer) analyzeNode(node models.Value) int {
	switch node.Kind() {
	case models.ObjectKind:
		a.summary.Objects++
		obj, _ := node.AsObject()
		deepest := 0
		for _, child := range obj.All() {
			a.summary.Keys++
			deepest = max(deepest, a.analyzeNode(child))
		}
		return deepest + 1
	case models.ArrayKind:
		a.summary.Arrays++
		elems, _ := node.AsArray()
		deepest := 0
		for _, child := range elems {
			deepest = max(deepest, a.analyzeNode(child))
		}
		return deepest + 1
	case models.StringKind:
		a.summary.Strings++
		s, _ := node.AsString()
		if isTimestamp(s) {
			a.summary.Timestamps++
		}
	case models.NumberKind:
		a.summary.Numbers++
		lit, _ := node.AsNumber()
		a.analyzeNumber(json.Number(lit))
	case models.BoolKind:
		a.summary.Booleans++
	default:
		a.summary.Nulls++
	}
	return 0
}

func (a *Analyzer) analyzeNumber(num json.Number) {
	if _, err := num.Int64(); err == nil {
		a.summary.Integers++
		return
	}
	a.summary.Floats++
}

func isTimestamp(s string) bool {
	return rfc3339Regex.MatchString(s) || dateOnlyRegex.MatchString(s) || dateTimeRegex.MatchString(s)
}
