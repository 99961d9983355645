package handler

import (
	"fmt"
	"time"
)

type mockUserStats struct {
	TotalTests        int     `json:"totalTests"`
	AvgScore          float64 `json:"avgScore"`
	BestScore         float64 `json:"bestScore"`
	ImprovementRate   float64 `json:"improvementRate"`
	WeeklyGoal        int     `json:"weeklyGoal"`
	CompletedThisWeek int     `json:"completedThisWeek"`
	Streak            int     `json:"streak"`
}

type mockMentor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Expertise    string    `json:"expertise"`
	Rating       float64   `json:"rating"`
	Experience   string    `json:"experience"`
	ProfileImage string    `json:"profileImage"`
	Bio          string    `json:"bio"`
	Specialties  []string  `json:"specialties"`
	HourlyRate   int       `json:"hourlyRate"`
	Availability []string  `json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
}

type mockPost struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
	Tags       []string  `json:"tags"`
}

// mockData is the fallback body served when the backend is unavailable.
func (h *ProxyHandler) mockData(name string) any {
	now := h.now().UTC()

	switch name {
	case "getUserStats":
		return mockUserStats{
			TotalTests:        15,
			AvgScore:          85.5,
			BestScore:         95,
			ImprovementRate:   12.5,
			WeeklyGoal:        3,
			CompletedThisWeek: 2,
			Streak:            7,
		}
	case "getMentors":
		return map[string][]mockMentor{
			"mentors": {{
				ID:           "mentor_1",
				Name:         "Sarah Johnson",
				Expertise:    "Strength Training",
				Rating:       4.8,
				Experience:   "8 years",
				ProfileImage: "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=400",
				Bio:          "Certified personal trainer specializing in strength and conditioning.",
				Specialties:  []string{"Strength Training", "Powerlifting", "Injury Prevention"},
				HourlyRate:   75,
				Availability: []string{"Monday", "Wednesday", "Friday"},
				CreatedAt:    now,
			}},
		}
	case "getCommunityPosts":
		return map[string][]mockPost{
			"posts": {{
				ID:         "post_1",
				AuthorID:   "user_1",
				AuthorName: "John Doe",
				Content:    "Just completed my first marathon! Training with Mike was incredible.",
				Type:       "achievement",
				Likes:      24,
				Comments:   8,
				CreatedAt:  now.Add(-2 * time.Hour),
				Tags:       []string{"marathon", "achievement"},
			}},
		}
	default:
		return map[string]string{"error": fmt.Sprintf("Unknown function: %s", name)}
	}
}
