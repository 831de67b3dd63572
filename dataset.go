package qbench

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

/*
Dataset is an ordered list of scenarios per algorithm, as written by
GenerateDataset or by hand. Its yaml shape is:

	seed: 42
	factorization:
	  - n: 15
	search:
	  - marked_items: [5]
	    space_size: 16
	function_type:
	  - n_qubits: 3
	    function_type: balanced
	extremum:
	  - data: [7, 3, 9, 1]
	    find_min: true
	phase_estimation:
	  - phase: 0.25
	    n_counting_qubits: 4
*/
type Dataset struct {
	Seed            uint64               `yaml:"seed"`
	GeneratedAt     time.Time            `yaml:"generated_at,omitempty"`
	Factorization   []FactorParams       `yaml:"factorization,omitempty"`
	Search          []SearchParams       `yaml:"search,omitempty"`
	FunctionType    []FunctionTypeParams `yaml:"function_type,omitempty"`
	Extremum        []ExtremumParams     `yaml:"extremum,omitempty"`
	PhaseEstimation []PhaseParams        `yaml:"phase_estimation,omitempty"`
}

func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}

	return ds, nil
}

func DecodeDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode dataset")
	}

	if err := ds.normalize(); err != nil {
		return nil, err
	}

	return &ds, nil
}

func (d *Dataset) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "encode dataset")
	}

	return enc.Close()
}

// Size is the total number of scenarios.
func (d *Dataset) Size() int {
	return len(d.Factorization) + len(d.Search) + len(d.FunctionType) +
		len(d.Extremum) + len(d.PhaseEstimation)
}

// normalize canonicalizes function type spellings.
func (d *Dataset) normalize() error {
	for i := range d.FunctionType {
		ft, err := ParseFunctionType(string(d.FunctionType[i].Type))
		if err != nil {
			return errors.Wrapf(err, "function_type[%d]", i)
		}
		d.FunctionType[i].Type = ft
	}
	return nil
}
