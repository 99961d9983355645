package model

// AssessmentTest is a catalog entry describing a fitness test.
type AssessmentTest struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Duration     string   `json:"duration" yaml:"duration"`
	Difficulty   string   `json:"difficulty" yaml:"difficulty"`
	Category     string   `json:"category" yaml:"category"`
	IsActive     bool     `json:"isActive" yaml:"is_active"`
	Instructions []string `json:"instructions,omitempty" yaml:"instructions"`
}
