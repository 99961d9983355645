package service

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/model"
)

//go:embed data/tests.yaml
var testCatalogYAML []byte

// TestService serves the static assessment-test catalog.
type TestService struct {
	tests []model.AssessmentTest
	byID  map[string]model.AssessmentTest
}

func NewTestService() (*TestService, error) {
	return newTestService(testCatalogYAML)
}

func newTestService(raw []byte) (*TestService, error) {
	var tests []model.AssessmentTest
	if err := yaml.Unmarshal(raw, &tests); err != nil {
		return nil, fmt.Errorf("failed to parse test catalog: %w", err)
	}

	byID := make(map[string]model.AssessmentTest, len(tests))
	for _, t := range tests {
		if t.ID == "" {
			return nil, fmt.Errorf("test catalog entry %q has no id", t.Name)
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate test id %q in catalog", t.ID)
		}
		byID[t.ID] = t
	}

	return &TestService{tests: tests, byID: byID}, nil
}

func (s *TestService) List() []model.AssessmentTest {
	return s.tests
}

func (s *TestService) GetByID(p *model.TestIDPayload) (*model.AssessmentTest, error) {
	t, ok := s.byID[p.TestID]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Test not found with ID: %s", p.TestID), true, nil)
	}
	return &t, nil
}
