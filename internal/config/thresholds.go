package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/domain"
)

// thresholdOverride is one platform's entry in a thresholds file. Absent
// fields keep the default.
type thresholdOverride struct {
	TestMaxAgeDays      *int               `yaml:"test_max_age_days"`
	TestMaxCount        *int               `yaml:"test_max_count"`
	VolumeCounters      []domain.Counter   `yaml:"volume_counters"`
	HighRecencyDays     *int               `yaml:"high_recency_days"`
	ModerateRecencyDays *int               `yaml:"moderate_recency_days"`
	HighVolume          []classify.Minimum `yaml:"high_volume"`
}

func (o thresholdOverride) apply(t classify.Thresholds) classify.Thresholds {
	if o.TestMaxAgeDays != nil {
		t.TestMaxAgeDays = *o.TestMaxAgeDays
	}
	if o.TestMaxCount != nil {
		t.TestMaxCount = *o.TestMaxCount
	}
	if o.VolumeCounters != nil {
		t.VolumeCounters = o.VolumeCounters
	}
	if o.HighRecencyDays != nil {
		t.HighRecencyDays = *o.HighRecencyDays
	}
	if o.ModerateRecencyDays != nil {
		t.ModerateRecencyDays = *o.ModerateRecencyDays
	}
	if o.HighVolume != nil {
		t.HighVolume = o.HighVolume
	}
	return t
}

// LoadThresholds reads a thresholds file and merges it onto the defaults.
// Only platforms named in the file are returned.
func LoadThresholds(path string) (map[domain.Platform]classify.Thresholds, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open thresholds file: %w", err)
	}
	defer f.Close()

	set, err := ParseThresholds(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseThresholds decodes a YAML document keyed by platform name:
//
//	daohaus:
//	  high_recency_days: 14
//	  high_volume:
//	    - {counter: proposals, min: 10}
//
// Unknown platforms, unknown fields and merged thresholds that fail
// validation are errors.
func ParseThresholds(r io.Reader) (map[domain.Platform]classify.Thresholds, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read thresholds: %w", err)
	}

	var raw map[string]thresholdOverride
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode thresholds: %w", err)
	}

	set := make(map[domain.Platform]classify.Thresholds, len(raw))
	for name, o := range raw {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if _, dup := set[p]; dup {
			return nil, fmt.Errorf("platform %s listed twice", p)
		}
		base, _ := classify.DefaultThresholds(p)
		merged := o.apply(base)
		if err := merged.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		set[p] = merged
	}
	return set, nil
}
