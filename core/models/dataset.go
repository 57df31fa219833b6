package models

// Dataset holds the tabular feature/label arrays supplied by the data source
type Dataset struct {
	Features     [][]float64
	Labels       []float64
	FeatureNames []string
	TargetColumn string
}

// Empty reports whether the dataset carries no training rows
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Features) == 0
}

// Rows returns the number of training samples
func (d *Dataset) Rows() int {
	if d == nil {
		return 0
	}
	return len(d.Features)
}
