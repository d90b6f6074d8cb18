// Package dataset assembles a finished synthesis pool into named
// train/validation/test splits for the training and evaluation
// collaborators.
package dataset

import (
	"github.com/viswavi/prompt-distillation/synthesis"
)

// SplitName names one partition of a dataset.
type SplitName = string

const (
	TrainSplit      SplitName = "train"
	ValidationSplit SplitName = "validation"
	TestSplit       SplitName = "test"
)

// Dataset is the structured artifact handed to collaborators. Read-only
// once assembled; the core makes no assumption about the training algorithm
// consuming it.
type Dataset struct {
	// ID identifies this assembly.
	ID string `json:"id"`
	// Splits maps split names to their examples. Splits with a zero
	// configured proportion are absent.
	Splits map[SplitName][]synthesis.Example `json:"splits"`
}

// Split returns the named split, nil when absent.
func (d *Dataset) Split(name SplitName) []synthesis.Example {
	return d.Splits[name]
}

// Size returns the total example count across splits.
func (d *Dataset) Size() int {
	n := 0
	for _, split := range d.Splits {
		n += len(split)
	}
	return n
}
