package dataset

import "math"

/*
BinaryEntropy takes a slice of class labels and the two class values and
returns the entropy in bits of the labels: 0 for an empty or pure slice and
-p*log2(p) - (1-p)*log2(1-p) otherwise, p being the fraction of labels equal
to classes[0].
*/
func BinaryEntropy(labels []string, classes [2]string) float64 {
	var a int
	for _, l := range labels {
		if l == classes[0] {
			a++
		}
	}
	return CountEntropy(a, len(labels)-a)
}

// CountEntropy returns the binary entropy in bits of a set with a
// instances of one class and b of the other.
func CountEntropy(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := float64(a) / float64(a+b)
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

/*
SplitEntropy takes a partition of a set of total instances into subsets and
returns the weighted sum of the entropy of each subset, the weight being the
fraction of the total instances in the subset. Empty subsets add nothing.
*/
func SplitEntropy(partition []*Dataset, total int, classes [2]string) float64 {
	if total == 0 {
		return 0
	}
	var result float64
	for _, s := range partition {
		n := s.Count()
		if n == 0 {
			continue
		}
		a, b := s.countClasses(classes)
		result += float64(n) / float64(total) * CountEntropy(a, b)
	}
	return result
}
