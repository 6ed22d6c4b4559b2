package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.uber.org/zap"
)

// ReferenceSpec is one curated specification from the reference catalog
// document. Reference specs are inputs to triangulation, not agent outputs.
type ReferenceSpec struct {
	Name             string
	Option           string
	FrequencyDisplay string
	Status           string
	Importance       string
	TotalFrequency   int
}

type refValue struct {
	StandardizedValue string `json:"standardized_value"`
	Frequency         int    `json:"frequency"`
	SpecStatus        string `json:"spec_status"`
}

type refEntry struct {
	SpecName string     `json:"spec_name"`
	Values   []refValue `json:"values"`
}

var refCategories = []string{"primary_specs", "secondary_specs", "tertiary_specs", "quaternary_specs"}

// ParseReferenceSpecs reads the reference catalog JSON and returns the top
// five specifications across all categories by combined frequency. Both the
// current shape (categories under "spec_summary") and the legacy shape
// (categories at the root) are accepted. Product-type entries are filtered
// out. A malformed document is a run-level input error.
func ParseReferenceSpecs(content string) ([]ReferenceSpec, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("empty reference document")
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return nil, fmt.Errorf("invalid reference JSON: %w", err)
	}

	container := root
	if raw, ok := root["spec_summary"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			container = nested
		}
	}

	var specs []ReferenceSpec
	for _, category := range refCategories {
		raw, ok := container[category]
		if !ok {
			continue
		}

		var entries []refEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			logger.Error("Skipping unreadable reference category",
				zap.String("category", category), zap.Error(err))
			continue
		}

		importance := categoryImportance(category)
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.SpecName), "product type") {
				logger.Info("Filtering out product type spec", zap.String("spec", entry.SpecName))
				continue
			}
			if spec, ok := combineEntry(entry, importance); ok {
				specs = append(specs, spec)
			}
		}
	}

	if len(specs) == 0 {
		return nil, errors.New("no specifications found in reference document")
	}

	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].TotalFrequency > specs[j].TotalFrequency
	})
	if len(specs) > 5 {
		specs = specs[:5]
	}
	return specs, nil
}

// combineEntry folds every value of a reference entry into one display row,
// options joined by " / " in descending frequency order.
func combineEntry(entry refEntry, importance string) (ReferenceSpec, bool) {
	if len(entry.Values) == 0 {
		return ReferenceSpec{}, false
	}

	values := make([]refValue, len(entry.Values))
	copy(values, entry.Values)
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Frequency > values[j].Frequency
	})

	total := 0
	for _, v := range values {
		total += v.Frequency
	}

	options := linq.Map(values, func(v refValue) string { return v.StandardizedValue })
	freqs := linq.Map(values, func(v refValue) string { return fmt.Sprintf("%d", v.Frequency) })
	statuses := linq.Map(values, func(v refValue) string { return v.SpecStatus })

	name := entry.SpecName
	if name == "" {
		name = "Unknown Specification"
	}

	return ReferenceSpec{
		Name:             name,
		Option:           strings.Join(options, " / "),
		FrequencyDisplay: fmt.Sprintf("%s (Total: %d)", strings.Join(freqs, " / "), total),
		Status:           strings.Join(statuses, " / "),
		Importance:       importance,
		TotalFrequency:   total,
	}, true
}

func categoryImportance(category string) string {
	name := strings.TrimSuffix(category, "_specs")
	if name == "" {
		return category
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
