/*
Package csv reads datasets from CSV streams and writes them back.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
)

/*
Read takes an io.Reader for a CSV stream and a slice of features (the
last one being the label) and returns the dataset parsed from the reader
or an error.

The header or first row of the CSV content is expected to consist of the
names of all the given features, in any order. The rest of the rows should
consist of valid values for the features.
*/
func Read(reader io.Reader, features []feature.Feature) (*dataset.Dataset, error) {
	d, err := dataset.Empty(features)
	if err != nil {
		return nil, err
	}
	err = ReadBySample(reader, features, func(_ int, instance dataset.Instance) (bool, error) {
		return true, d.Add(instance)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
ReadBySample takes an io.Reader for a CSV stream, a slice of features and a
lambda function on an integer and an instance that returns a boolean value.
It parses the instances from the reader and for each it calls the lambda
function with the instance and its index as parameters. If the lambda
function returns true, it will continue processing the next instance,
otherwise it will stop. An error is returned if something goes wrong when
reading the stream or parsing an instance.

Instances hold their values in the order of the given features, whatever
the order of the columns.
*/
func ReadBySample(reader io.Reader, features []feature.Feature, lambda func(int, dataset.Instance) (bool, error)) error {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseHeader(header, features)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		instance, err := parseRow(row, columns, features)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, instance)
		if err != nil {
			return fmt.Errorf("line %d: %v", l, err)
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadFile takes a filepath string and a slice of features, opens the file
to which the filepath points to and uses Read to return the dataset in it.
If the filepath is "" os.Stdin is read instead.
*/
func ReadFile(filepath string, features []feature.Feature) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := Read(f, features)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return d, err
}

/*
Write takes a writer and a dataset and dumps the dataset to the writer in
CSV format, with a header naming its features. It returns an error if
something went wrong when writing.
*/
func Write(writer io.Writer, d *dataset.Dataset) error {
	w := csv.NewWriter(writer)
	features := d.Features()
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = f.Name()
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for n, instance := range d.Instances() {
		for j, v := range instance {
			if fv, ok := v.(float64); ok {
				record[j] = strconv.FormatFloat(fv, 'g', -1, 64)
			} else {
				record[j] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for instance %d: %v", n+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

// parseHeader returns the column of every feature
func parseHeader(header []string, features []feature.Feature) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := byName[name]; ok {
			return nil, fmt.Errorf("parsing header: duplicated column %s", name)
		}
		byName[name] = i
	}
	columns := make([]int, len(features))
	for i, f := range features {
		c, ok := byName[f.Name()]
		if !ok {
			return nil, fmt.Errorf("parsing header: missing column for feature %s", f.Name())
		}
		columns[i] = c
	}
	return columns, nil
}

func parseRow(row []string, columns []int, features []feature.Feature) (dataset.Instance, error) {
	instance := make(dataset.Instance, len(features))
	for i, f := range features {
		if columns[i] >= len(row) {
			return nil, fmt.Errorf("missing value for feature %s", f.Name())
		}
		v := row[columns[i]]
		var value interface{} = v
		if f.Kind() == feature.Numeric {
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("converting %s to float64: %v", v, err)
			}
			value = fv
		}
		if ok, err := f.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %v of type %T for feature %s: %v", value, value, f.Name(), err)
		}
		instance[i] = value
	}
	return instance, nil
}
