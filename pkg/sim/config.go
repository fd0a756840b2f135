package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-diffusion/pkg/validation"
)

// Config holds every knob of one simulation run. Zero values are not usable;
// start from DefaultConfig and override.
type Config struct {
	// PopulationSize is the number of agents (graph nodes).
	PopulationSize int `yaml:"population_size" validate:"gt=0"`

	// AttachmentM is the preferential-attachment fan-out: the number of
	// edges each new node forms when joining the network.
	AttachmentM int `yaml:"attachment_m" validate:"gt=0"`

	// TechnologyCount is the number of competing technologies.
	TechnologyCount int `yaml:"technology_count" validate:"gt=0"`

	// EarlyAdoptersPerTech is how many distinct agents are seeded with each
	// technology before the run starts.
	EarlyAdoptersPerTech int `yaml:"early_adopters_per_technology" validate:"gt=0"`

	// SwitchingProbability is the per-touch probability that an agent
	// already holding a technology reconsiders its choice.
	SwitchingProbability float64 `yaml:"switching_probability" validate:"gte=0,lte=1"`

	// Iterations is the number of simulation steps.
	Iterations int `yaml:"iterations" validate:"gte=0"`

	// RandomSeed makes the whole run reproducible, network generation
	// included. Nil means seed from the clock.
	RandomSeed *int64 `yaml:"random_seed,omitempty"`
}

// DefaultConfig returns the baseline configuration: 1000 agents, 3
// technologies with 2 early adopters each, 10000 iterations at switching
// probability 0.9.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       1000,
		AttachmentM:          3,
		TechnologyCount:      3,
		EarlyAdoptersPerTech: 2,
		SwitchingProbability: 0.9,
		Iterations:           10000,
	}
}

// LoadConfig reads a YAML scenario file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration. All violations map to
// ErrInvalidParameter except the seeding capacity check, which maps to
// ErrInsufficientPopulation.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return setupError("Validate", "", fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}

	cv := validation.NewConfigValidator("SimulationConfig").
		Positive("PopulationSize", c.PopulationSize).
		Positive("AttachmentM", c.AttachmentM).
		Positive("TechnologyCount", c.TechnologyCount).
		Positive("EarlyAdoptersPerTech", c.EarlyAdoptersPerTech).
		NonNegative("Iterations", c.Iterations).
		RangeFloat("SwitchingProbability", c.SwitchingProbability, 0, 1).
		LessThan("AttachmentM", c.AttachmentM, "PopulationSize", c.PopulationSize)
	if err := cv.Validate(); err != nil {
		return setupError("Validate", "", fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}

	if need := c.TechnologyCount * c.EarlyAdoptersPerTech; need > c.PopulationSize {
		return setupError("Validate", "EarlyAdoptersPerTech",
			fmt.Errorf("%w: need %d distinct early adopters, population is %d",
				ErrInsufficientPopulation, need, c.PopulationSize))
	}
	return nil
}

// Seed returns the effective random seed for the run.
func (c Config) Seed() int64 {
	if c.RandomSeed != nil {
		return *c.RandomSeed
	}
	return time.Now().UnixNano()
}

// WithSeed returns a copy of the config pinned to the given seed.
func (c Config) WithSeed(seed int64) Config {
	c.RandomSeed = &seed
	return c
}
