package model

import "github.com/vitasports/backend/internal/validation"

type LeaderboardPayload struct {
	Limit    int    `json:"limit" query:"limit" validate:"gte=0"`
	TestType string `json:"testType" query:"testType" validate:"omitempty,max=64"`
}

func (p *LeaderboardPayload) Validate() error {
	return validation.Struct(p)
}
