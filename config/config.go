package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the thresholds and caps the role rules and coordinator are
// compiled from. Zero values in a loaded file keep the defaults.
type Tuning struct {
	Gatherer    GathererTuning    `yaml:"gatherer"`
	Transporter TransporterTuning `yaml:"transporter"`
	Purchase    PurchaseTuning    `yaml:"purchase"`

	EnemyBaseBuffer int `yaml:"enemy_base_buffer"` // half-width of the no-go square around enemy bases
	CorridorPrefix  int `yaml:"corridor_prefix"`   // path positions reserved per resolved move
}

type GathererTuning struct {
	SurplusDropMin int `yaml:"surplus_drop_min"` // surplus gatherers head home above this
	TransferMin    int `yaml:"transfer_min"`     // hand cargo to a transporter at or above this
	MineCap        int `yaml:"mine_cap"`         // stop mining at this load
}

type TransporterTuning struct {
	DropMin int `yaml:"drop_min"` // head home above this load
}

type PurchaseTuning struct {
	MaxGatherers    int `yaml:"max_gatherers"`
	MaxTransporters int `yaml:"max_transporters"`
}

func Default() Tuning {
	return Tuning{
		Gatherer: GathererTuning{
			SurplusDropMin: 4,
			TransferMin:    25,
			MineCap:        50,
		},
		Transporter: TransporterTuning{
			DropMin: 24,
		},
		Purchase: PurchaseTuning{
			MaxGatherers:    6,
			MaxTransporters: 6,
		},
		EnemyBaseBuffer: 4,
		CorridorPrefix:  3,
	}
}

// Load reads a YAML tuning file on top of the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	var file Tuning
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	t.overlay(file)
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) overlay(o Tuning) {
	setInt(&t.Gatherer.SurplusDropMin, o.Gatherer.SurplusDropMin)
	setInt(&t.Gatherer.TransferMin, o.Gatherer.TransferMin)
	setInt(&t.Gatherer.MineCap, o.Gatherer.MineCap)
	setInt(&t.Transporter.DropMin, o.Transporter.DropMin)
	setInt(&t.Purchase.MaxGatherers, o.Purchase.MaxGatherers)
	setInt(&t.Purchase.MaxTransporters, o.Purchase.MaxTransporters)
	setInt(&t.EnemyBaseBuffer, o.EnemyBaseBuffer)
	setInt(&t.CorridorPrefix, o.CorridorPrefix)
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate rejects settings the rules cannot work with.
func (t Tuning) Validate() error {
	var errs []error
	if t.Gatherer.SurplusDropMin < 0 || t.Gatherer.TransferMin < 0 || t.Transporter.DropMin < 0 {
		errs = append(errs, errors.New("cargo thresholds must be non-negative"))
	}
	if t.Gatherer.MineCap <= 0 {
		errs = append(errs, fmt.Errorf("gatherer.mine_cap must be positive, got %d", t.Gatherer.MineCap))
	}
	if t.Purchase.MaxGatherers < 0 || t.Purchase.MaxTransporters < 0 {
		errs = append(errs, errors.New("purchase caps must be non-negative"))
	}
	if t.EnemyBaseBuffer < 0 {
		errs = append(errs, fmt.Errorf("enemy_base_buffer must be non-negative, got %d", t.EnemyBaseBuffer))
	}
	if t.CorridorPrefix < 2 {
		// The reserved prefix must at least cover the first step.
		errs = append(errs, fmt.Errorf("corridor_prefix must be at least 2, got %d", t.CorridorPrefix))
	}
	return errors.Join(errs...)
}
