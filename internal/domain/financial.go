package domain

import (
	"encoding/json"
	"fmt"
)

// DataAvailability classifies how much verified financial data exists for a company.
type DataAvailability string

const (
	AvailabilityPublic  DataAvailability = "Public"
	AvailabilityPrivate DataAvailability = "Private"
	AvailabilityLimited DataAvailability = "Limited"
)

// ValidAvailability reports whether a is one of the known availability values.
func ValidAvailability(a DataAvailability) bool {
	switch a {
	case AvailabilityPublic, AvailabilityPrivate, AvailabilityLimited:
		return true
	default:
		return false
	}
}

// Series is a reported figure over consecutive periods. A nil Data, Period or
// Source means the value could not be verified; it is never read as zero.
type Series struct {
	Data   []float64 `json:"data"`
	Period []string  `json:"period"`
	Source *string   `json:"source"`
}

// UnmarshalJSON rejects null entries inside data or period. A figure that
// cannot be verified is reported by nulling the whole series.
func (s *Series) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data   []*float64 `json:"data"`
		Period []*string  `json:"period"`
		Source *string    `json:"source"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Series{Source: raw.Source}
	if raw.Data != nil {
		out.Data = make([]float64, len(raw.Data))
		for i, v := range raw.Data {
			if v == nil {
				return fmt.Errorf("data[%d] is null", i)
			}
			out.Data[i] = *v
		}
	}
	if raw.Period != nil {
		out.Period = make([]string, len(raw.Period))
		for i, v := range raw.Period {
			if v == nil {
				return fmt.Errorf("period[%d] is null", i)
			}
			out.Period[i] = *v
		}
	}
	*s = out
	return nil
}

// HasData reports whether the series carries any verified figures.
func (s *Series) HasData() bool {
	return s != nil && s.Data != nil
}

// Check verifies that Data and Period are present together with equal length.
func (s *Series) Check() error {
	if s == nil || s.Data == nil {
		return nil
	}
	if s.Period == nil {
		return fmt.Errorf("data present without period")
	}
	if len(s.Data) != len(s.Period) {
		return fmt.Errorf("data has %d values but period has %d labels", len(s.Data), len(s.Period))
	}
	return nil
}

// FinancialPayload is the structured company summary produced by the completion provider.
type FinancialPayload struct {
	Revenue          *Series          `json:"revenue"`
	Profit           *Series          `json:"profit"`
	Summary          string           `json:"summary"`
	DataAvailability DataAvailability `json:"dataAvailability"`
	LastUpdated      string           `json:"lastUpdated"`
}
