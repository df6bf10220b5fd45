/*
Package arff reads datasets in the Attribute-Relation File Format.

Only nominal attributes ({v1, v2, ...}) and numeric ones (numeric, real or
integer) are supported, and the last attribute must be a nominal class with
exactly two values. Lines starting with % are comments. Names and values
may be quoted with single or double quotes.
*/
package arff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
)

// Relation is the content of an ARFF file
type Relation struct {
	Name    string
	Dataset *dataset.Dataset
}

/*
Read takes an io.Reader with ARFF content and returns the dataset it
describes or an error naming the line that could not be parsed.
*/
func Read(r io.Reader) (*dataset.Dataset, error) {
	rel, err := ReadRelation(r)
	if err != nil {
		return nil, err
	}
	return rel.Dataset, nil
}

/*
ReadFile opens the file at the given path and uses Read to return the
dataset in it.
*/
func ReadFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	defer f.Close()
	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing ARFF file %s: %v", path, err)
	}
	return d, nil
}

// ReadRelation is like Read but keeps the name of the relation
func ReadRelation(r io.Reader) (*Relation, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, fmt.Errorf("line %d: %v", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %v", p.line+1, err)
	}
	if p.dataset == nil {
		return nil, fmt.Errorf("no @data section")
	}
	return &Relation{Name: p.relation, Dataset: p.dataset}, nil
}

type parser struct {
	line     int
	relation string
	features []feature.Feature
	dataset  *dataset.Dataset
}

func (p *parser) parseLine(l string) error {
	if l == "" || strings.HasPrefix(l, "%") {
		return nil
	}
	if p.dataset != nil {
		return p.parseInstance(l)
	}
	keyword, rest := cut(l)
	switch strings.ToLower(keyword) {
	case "@relation":
		name, _, err := token(rest)
		if err != nil {
			return err
		}
		p.relation = name
		return nil
	case "@attribute":
		f, err := parseAttribute(rest)
		if err != nil {
			return err
		}
		for _, other := range p.features {
			if other.Name() == f.Name() {
				return fmt.Errorf("duplicated attribute %s", f.Name())
			}
		}
		p.features = append(p.features, f)
		return nil
	case "@data":
		d, err := dataset.Empty(p.features)
		if err != nil {
			return err
		}
		p.dataset = d
		return nil
	}
	return fmt.Errorf("unexpected %q before @data", keyword)
}

func parseAttribute(s string) (feature.Feature, error) {
	name, rest, err := token(s)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("attribute with no name")
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		if !strings.HasSuffix(rest, "}") {
			return nil, fmt.Errorf("unterminated values of attribute %s", name)
		}
		values, err := fields(rest[1 : len(rest)-1])
		if err != nil {
			return nil, fmt.Errorf("values of attribute %s: %v", name, err)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("attribute %s has no values", name)
		}
		return feature.NewDiscreteFeature(name, values), nil
	}
	switch strings.ToLower(rest) {
	case "numeric", "real", "integer":
		return feature.NewContinuousFeature(name), nil
	}
	return nil, fmt.Errorf("attribute %s has unsupported type %q", name, rest)
}

func (p *parser) parseInstance(l string) error {
	values, err := fields(l)
	if err != nil {
		return err
	}
	features := p.dataset.Features()
	if len(values) != len(features) {
		return fmt.Errorf("expected %d values, got %d", len(features), len(values))
	}
	instance := make(dataset.Instance, len(values))
	for i, v := range values {
		if v == "?" {
			return fmt.Errorf("missing value for attribute %s", features[i].Name())
		}
		if features[i].Kind() == feature.Numeric {
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("value %q of attribute %s is not numeric", v, features[i].Name())
			}
			instance[i] = fv
		} else {
			instance[i] = v
		}
	}
	return p.dataset.Add(instance)
}

// cut splits s at its first run of whitespace
func cut(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// token returns the first, possibly quoted, token of s and what follows it
func token(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", nil
	}
	if q := s[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in %q", s)
		}
		return s[1 : end+1], s[end+2:], nil
	}
	name, rest := cut(s)
	return name, rest, nil
}

// fields splits s on the commas that are not quoted, trimming and
// unquoting every field
func fields(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var result []string
	var current strings.Builder
	var quote byte
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			if strings.TrimSpace(current.String()) == "" {
				current.Reset()
			}
			quote = c
			quoted = true
		case c == ',':
			result = append(result, field(current.String(), quoted))
			current.Reset()
			quoted = false
		case quoted && (c == ' ' || c == '\t'):
		default:
			current.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	return append(result, field(current.String(), quoted)), nil
}

func field(s string, quoted bool) string {
	if quoted {
		return s
	}
	return strings.TrimSpace(s)
}
