package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func features() []feature.Feature {
	return []feature.Feature{
		feature.NewDiscreteFeature("outlook", []string{"sunny", "rain"}),
		feature.NewContinuousFeature("humidity"),
		feature.NewDiscreteFeature("play", []string{"yes", "no"}),
	}
}

func TestRead(t *testing.T) {
	input := "humidity,play,outlook\n85,no,sunny\n70.5, yes, rain\n"
	d, err := Read(strings.NewReader(input), features())
	require.NoError(t, err)
	assert.Equal(t, []dataset.Instance{
		{"sunny", 85.0, "no"},
		{"rain", 70.5, "yes"},
	}, d.Instances())
}

func TestReadErrors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":          "",
		"missing column": "outlook,play\nsunny,no\n",
		"duplicated":     "outlook,humidity,play,play\nsunny,1,no,no\n",
		"not a number":   "outlook,humidity,play\nsunny,high,no\n",
		"unknown value":  "outlook,humidity,play\nsnow,1,no\n",
		"unknown class":  "outlook,humidity,play\nsunny,1,maybe\n",
		"short row":      "outlook,humidity,play\nsunny,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(input), features())
			assert.Error(t, err)
		})
	}
}

func TestReadReportsLine(t *testing.T) {
	input := "outlook,humidity,play\nsunny,1,no\nsunny,x,no\n"
	_, err := Read(strings.NewReader(input), features())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadBySampleStops(t *testing.T) {
	input := "outlook,humidity,play\nsunny,1,no\nrain,2,yes\nrain,3,yes\n"
	var read []int
	err := ReadBySample(strings.NewReader(input), features(), func(i int, _ dataset.Instance) (bool, error) {
		read = append(read, i)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, read)
}

func TestWriteRead(t *testing.T) {
	d, err := dataset.New(features(), []dataset.Instance{
		{"sunny", 85.25, "no"},
		{"rain", 70.0, "yes"},
	})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, d))
	assert.Equal(t, "outlook,humidity,play\nsunny,85.25,no\nrain,70,yes\n", buf.String())

	read, err := Read(buf, features())
	require.NoError(t, err)
	assert.Equal(t, d.Instances(), read.Instances())
}
