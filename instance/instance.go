// Package instance reads problem files and provides the preset example.
package instance

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"q.log/bigm/model"
)

type document struct {
	Maximize    bool                 `mapstructure:"maximize"`
	Objective   []float64            `mapstructure:"objective"`
	Constraints []constraintDocument `mapstructure:"constraints"`
}

type constraintDocument struct {
	Name         string    `mapstructure:"name"`
	Coefficients []float64 `mapstructure:"coefficients"`
	Relation     string    `mapstructure:"relation"`
	RHS          float64   `mapstructure:"rhs"`
}

// Load reads a problem from a YAML, JSON or TOML file, chosen by extension.
//
//	maximize: true
//	objective: [6, 5, 7]
//	constraints:
//	  - name: Resource 1
//	    coefficients: [2, 3, 2]
//	    relation: "<="
//	    rhs: 60
func Load(filename string) (*model.Problem, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "instance: read %s", filename)
	}
	p, err := decode(v)
	if err != nil {
		return nil, errors.Wrapf(err, "instance: %s", filename)
	}
	return p, nil
}

// Decode reads a problem from r in the given format ("yaml", "json", "toml").
func Decode(r io.Reader, format string) (*model.Problem, error) {
	v := viper.New()
	v.SetConfigType(strings.TrimPrefix(format, "."))
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, "instance: decode")
	}
	return decode(v)
}

func decode(v *viper.Viper) (*model.Problem, error) {
	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, errors.Wrap(err, "instance: unmarshal")
	}

	p := model.NewProblem(doc.Maximize, doc.Objective...)
	for i, c := range doc.Constraints {
		rel, err := model.ParseRelation(c.Relation)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i+1)
		}
		p.AddConstraint(c.Name, c.Coefficients, rel, c.RHS)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// IsMPS reports whether filename should be read with the MPS reader.
func IsMPS(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".mps")
}

// Example returns the five-resource production plan:
// maximize 6x1 + 5x2 + 7x3 under five <= resource limits.
func Example() *model.Problem {
	p := model.NewProblem(true, 6, 5, 7)
	p.AddConstraint("Resource 1", []float64{2, 3, 2}, model.LE, 60)
	p.AddConstraint("Resource 2", []float64{0, 3, 4}, model.LE, 80)
	p.AddConstraint("Resource 3", []float64{6, 1, 0}, model.LE, 80)
	p.AddConstraint("Resource 4", []float64{1, 5, 1}, model.LE, 50)
	p.AddConstraint("Resource 5", []float64{3, 0, 4}, model.LE, 56)
	return p
}
