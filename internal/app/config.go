package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Logging holds the options shared by every tool.
type Logging struct {
	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

// SweepConfig holds the options of the sweep-and-plot tool.
type SweepConfig struct {
	ConfigPath   string `validate:"required_without=List"`
	Section      string
	OutputPrefix string  `validate:"required"`
	Width        float64 `validate:"gt=0"`
	Height       float64 `validate:"gt=0"`
	StrictExpr   bool
	List         bool
	Logging
}

// NewSweepConfig validates and returns the sweep options.
func NewSweepConfig(cfg SweepConfig) (*SweepConfig, error) {
	if err := check(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConvertConfig holds the options of the document converter.
type ConvertConfig struct {
	Inputs   []string `validate:"min=1,dive,required"`
	ASCII    bool
	OutDir   string
	Antiword string `validate:"required"`
	Logging
}

// NewConvertConfig validates and returns the converter options.
func NewConvertConfig(cfg ConvertConfig) (*ConvertConfig, error) {
	if err := check(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WakeConfig holds the options of the wake scheduler.
type WakeConfig struct {
	Tokens  []string `validate:"min=1"`
	Mode    string   `validate:"oneof=standby freeze mem disk off no"`
	Timeout int      `validate:"gte=0"`
	DryRun  bool
	RTCWake string `validate:"required"`
	Zenity  string `validate:"required"`
	Logging
}

// NewWakeConfig validates and returns the wake scheduler options.
func NewWakeConfig(cfg WakeConfig) (*WakeConfig, error) {
	if err := check(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// check validates s and flattens validator errors into one readable message.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("invalid %s %q: must satisfy %s", fe.Field(), fmt.Sprint(fe.Value()), rule))
	}
	return errors.New(strings.Join(msgs, "; "))
}
