package memory

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
)

func (s *Store) AddSoilTest(_ context.Context, userID int64, in domain.SoilTestInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id()
	s.soilTests[userID] = append(s.soilTests[userID], domain.SoilTest{
		ID:                id,
		PHLevel:           in.PHLevel,
		NitrogenContent:   in.NitrogenContent,
		PhosphorusContent: in.PhosphorusContent,
		PotassiumContent:  in.PotassiumContent,
		OrganicMatter:     in.OrganicMatter,
		SoilType:          in.SoilType,
		Texture:           in.Texture,
		TestDate:          s.timestamp(),
		LabName:           in.LabName,
		Recommendations:   soilRecommendations(in),
	})
	return id, nil
}

// ListSoilTests returns newest first
func (s *Store) ListSoilTests(_ context.Context, userID int64) ([]domain.SoilTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.soilTests[userID]
	out := make([]domain.SoilTest, len(all))
	for i, t := range all {
		out[len(all)-1-i] = t
	}
	return out, nil
}

func (s *Store) AddPriceAlert(_ context.Context, userID int64, alert domain.PriceAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[userID] = append(s.alerts[userID], alert)
	return nil
}

func (s *Store) ListPriceAlerts(_ context.Context, userID int64) ([]domain.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PriceAlert, len(s.alerts[userID]))
	copy(out, s.alerts[userID])
	return out, nil
}

// soilRecommendations applies the standard ICAR thresholds for pH and
// available N/P/K (kg/ha).
func soilRecommendations(in domain.SoilTestInput) *string {
	var advice []string
	if in.PHLevel != nil {
		switch {
		case *in.PHLevel < 6.0:
			advice = append(advice, "Soil is acidic; apply agricultural lime.")
		case *in.PHLevel > 8.0:
			advice = append(advice, "Soil is alkaline; apply gypsum and organic manure.")
		}
	}
	if in.NitrogenContent != nil && *in.NitrogenContent < 280 {
		advice = append(advice, "Nitrogen is low; apply urea in split doses.")
	}
	if in.PhosphorusContent != nil && *in.PhosphorusContent < 10 {
		advice = append(advice, "Phosphorus is low; apply DAP or SSP at sowing.")
	}
	if in.PotassiumContent != nil && *in.PotassiumContent < 110 {
		advice = append(advice, "Potassium is low; apply muriate of potash.")
	}
	if len(advice) == 0 {
		advice = append(advice, "Nutrient levels are adequate; maintain with farmyard manure.")
	}

	out := advice[0]
	for _, a := range advice[1:] {
		out += " " + a
	}
	return &out
}
