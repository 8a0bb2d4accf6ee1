package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FeatureCosmoCats     = "cosmo-cats"
	FeatureKittyProducts = "kitty-products"
)

// KnownFeatures lists the toggles the application itself gates on.
var KnownFeatures = []string{FeatureCosmoCats, FeatureKittyProducts}

type Feature struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

var (
	ErrFeatureDisabled = errors.New("feature_disabled")
	ErrUnknownFeature  = errors.New("unknown_feature")
	ErrInvalidName     = errors.New("invalid_name")
)

// DisabledError is returned by the gate when a toggle is off. It matches
// ErrFeatureDisabled with errors.Is.
type DisabledError struct {
	Feature string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("Feature toggle '%s' is not enabled", e.Feature)
}

func (e *DisabledError) Is(target error) bool {
	return target == ErrFeatureDisabled
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
