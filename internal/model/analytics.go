package model

import "time"

type ViolationCount struct {
	Violation string `json:"violation" db:"violation"`
	Count     int    `json:"count" db:"count"`
}

type RealtimeMLStats struct {
	AverageFormScore     float64          `json:"averageFormScore"`
	CheatDetectionRate   float64          `json:"cheatDetectionRate"`
	MostCommonViolations []ViolationCount `json:"mostCommonViolations"`
}

type RealtimeAnalytics struct {
	TestsToday          int             `json:"testsToday"`
	ActiveUsersWeekly   int             `json:"activeUsersWeekly"`
	CommunityPostsToday int             `json:"communityPostsToday"`
	MLStats             RealtimeMLStats `json:"mlStats"`
	Timestamp           time.Time       `json:"timestamp"`
}
