package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validatePositive(field string, value int) []ValidationError {
	if value <= 0 {
		return []ValidationError{{Field: field, Message: "must be positive"}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{Field: field, Message: "must be non-negative"}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

// Validate checks every field and returns all problems found
func (c *RenderConfig) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, validatePositive("width", c.Width)...)
	errs = append(errs, validatePositive("height", c.Height)...)
	errs = append(errs, validatePositive("workers", c.Workers)...)
	errs = append(errs, validatePositive("max_recursion", c.MaxRecursion)...)
	errs = append(errs, validatePositive("antialiasing.grid", c.Antialiasing.Grid)...)
	if !c.Columns {
		errs = append(errs, validatePositive("tile_size", c.TileSize)...)
	}
	if c.Scene == "" {
		errs = append(errs, ValidationError{Field: "scene", Message: "is required"})
	}

	if c.PhotonMap.Enabled {
		errs = append(errs, validatePositive("photon_map.photons_per_light", c.PhotonMap.PhotonsPerLight)...)
		errs = append(errs, validatePositive("photon_map.nearest_count", c.PhotonMap.NearestCount)...)
		errs = append(errs, validateNonNegative("photon_map.caustic_photons_per_light", float64(c.PhotonMap.CausticPhotonsPerLight))...)
		errs = append(errs, validateNonNegative("photon_map.scale", c.PhotonMap.Scale)...)
		if c.PhotonMap.ConeFilter < 1 {
			errs = append(errs, ValidationError{Field: "photon_map.cone_filter", Message: "must be at least 1"})
		}
		if c.PhotonMap.CausticPhotonsPerLight > 0 {
			errs = append(errs, validatePositive("light_source_map.theta_steps", c.LightSourceMap.ThetaSteps)...)
			errs = append(errs, validatePositive("light_source_map.phi_steps", c.LightSourceMap.PhiSteps)...)
			errs = append(errs, validatePositive("light_source_map.samples_per_cell", c.LightSourceMap.SamplesPerCell)...)
		}
	}

	if c.Fog != nil {
		errs = append(errs, validateNonNegative("fog.half_distance", c.Fog.HalfDistance)...)
		for i, v := range c.Fog.Color {
			errs = append(errs, validateNonNegative(fmt.Sprintf("fog.color[%d]", i), v)...)
		}
	}

	for i, p := range c.CSGBlend {
		errs = append(errs, validateInRange(fmt.Sprintf("csg_blend[%d].weight", i), p.Weight, 0, 1)...)
	}
	if _, err := c.BlendProfile(); err != nil {
		errs = append(errs, ValidationError{Field: "csg_blend", Message: err.Error()})
	}

	return errs
}

// FormatValidationErrors renders errors one per line
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")
	for _, err := range errs {
		fmt.Fprintf(&b, "  - %s\n", err.Error())
	}
	return b.String()
}
