package simulation

import (
	"errors"
	"fmt"
)

// Input bounds and defaults.
const (
	MinStress       = 0
	MaxStress       = 100
	MinSleepQuality = 0
	MaxSleepQuality = 10
	MinActivity     = 0
	MaxActivity     = 10

	DefaultStress       = 50
	DefaultSleepQuality = 7
	DefaultActivity     = 5
)

// ErrInvalidInput indicates a slider value outside its documented bounds.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes which input was out of range.
type InputError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s must be between %d and %d, got %d",
		ErrInvalidInput, e.Field, e.Min, e.Max, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Input holds the three user-controlled parameters of a run.
type Input struct {
	// Stress is perceived stress, 0-100.
	Stress int `json:"stress" yaml:"stress"`

	// SleepQuality is sleep quality, 0-10.
	SleepQuality int `json:"sleep_quality" yaml:"sleep_quality"`

	// ActivityLevel is lifestyle activity, 0-10.
	ActivityLevel int `json:"activity_level" yaml:"activity_level"`
}

// DefaultInput returns the initial slider positions.
func DefaultInput() Input {
	return Input{
		Stress:        DefaultStress,
		SleepQuality:  DefaultSleepQuality,
		ActivityLevel: DefaultActivity,
	}
}

// Validate returns an *InputError for the first out-of-range field.
func (in Input) Validate() error {
	checks := []InputError{
		{Field: "stress", Value: in.Stress, Min: MinStress, Max: MaxStress},
		{Field: "sleep_quality", Value: in.SleepQuality, Min: MinSleepQuality, Max: MaxSleepQuality},
		{Field: "activity_level", Value: in.ActivityLevel, Min: MinActivity, Max: MaxActivity},
	}
	for _, c := range checks {
		if c.Value < c.Min || c.Value > c.Max {
			err := c
			return &err
		}
	}
	return nil
}
