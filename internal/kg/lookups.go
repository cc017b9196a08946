package kg

import "context"

// Materials returns the distinct material names, sorted.
func (s *Service) Materials(ctx context.Context) ([]string, error) {
	records, err := s.readRecords(ctx,
		`MATCH (m:Material) RETURN DISTINCT m.name AS name ORDER BY name`, nil)
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "name"), nil
}

// DeteriorationTypes returns the distinct defect names, sorted.
func (s *Service) DeteriorationTypes(ctx context.Context) ([]string, error) {
	records, err := s.readRecords(ctx,
		`MATCH (d:Deterioration) RETURN DISTINCT d.name AS name ORDER BY name`, nil)
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "name"), nil
}

// Environments returns the distinct environment names, sorted.
func (s *Service) Environments(ctx context.Context) ([]string, error) {
	records, err := s.readRecords(ctx,
		`MATCH (e:Environment) RETURN DISTINCT e.name AS name ORDER BY name`, nil)
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "name"), nil
}
