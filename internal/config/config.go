package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Config gathers every tunable of an optimization run. Field names double as the keys of the JSON file
type Config struct {
	Capacity      int      `mapstructure:"capacity" validate:"min=1"`
	MinSlots      int      `mapstructure:"minSlots" validate:"min=1"`
	MaxSlots      int      `mapstructure:"maxSlots" validate:"gtefield=MinSlots"`
	Trials        int      `mapstructure:"trials" validate:"min=1"`
	Workers       int      `mapstructure:"workers" validate:"min=0"`
	Seed          uint64   `mapstructure:"seed"`
	Strategy      string   `mapstructure:"strategy" validate:"oneof=exact heuristic sat"`
	DisableAnchor bool     `mapstructure:"disableAnchor"`
	MaxChoices    int      `mapstructure:"maxChoices" validate:"min=1"`
	Solver        string   `mapstructure:"solver" validate:"oneof=gini kissat cadical cryptominisat"`
	SolverPath    string   `mapstructure:"solverPath"`
	ExternalBelow int      `mapstructure:"externalBelow" validate:"min=0"`
	Isolated      []string `mapstructure:"isolated" validate:"dive,required"`
	HistoryPath   string   `mapstructure:"historyPath"`
	MetricsPath   string   `mapstructure:"metricsPath"`
}

func Default() Config {
	return Config{
		Capacity:   25,
		MinSlots:   2,
		MaxSlots:   5,
		Trials:     100,
		Strategy:   "heuristic",
		MaxChoices: 3,
		Solver:     "gini",
		Isolated:   []string{},
	}
}

// Load decodes the JSON file at path on top of the default configuration and validates the result.
// Unknown keys are rejected
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file: %w", err)
	}

	return Decode(inputJson)
}

// Decode applies raw key-values on top of the default configuration
func Decode(raw map[string]any) (Config, error) {
	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, config.Validate()
}

func (config Config) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
