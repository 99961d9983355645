package service

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/lib/utils"
	"github.com/vitasports/backend/internal/model"
)

const (
	quickSeedResults = 10
	minDemoResults   = 15
	maxDemoResults   = 24
	demoHistoryDays  = 30
)

var demoTestIDs = []string{"sit-ups", "push-ups", "vertical-jump", "shuttle-run", "squats", "plank"}

var demoViolations = []string{
	"incomplete_range_of_motion",
	"back_not_straight",
	"knees_caving_in",
	"hips_sagging",
	"too_fast",
}

type demoProfile struct {
	email string
	name  string
	sport string
	level string
}

var demoProfiles = []demoProfile{
	{email: "arjun.demo@vitasports.shop", name: "Arjun Sharma", sport: "Athletics", level: "advanced"},
	{email: "priya.demo@vitasports.shop", name: "Priya Patel", sport: "Badminton", level: "intermediate"},
	{email: "rahul.demo@vitasports.shop", name: "Rahul Verma", sport: "Football", level: "beginner"},
	{email: "sneha.demo@vitasports.shop", name: "Sneha Reddy", sport: "Swimming", level: "intermediate"},
}

func demoMentors() []model.Mentor {
	return []model.Mentor{
		{Name: "Dr. Meera Iyer", Subtitle: "Sports Physiotherapist", Specialty: "Injury Prevention", Description: "Helps athletes move well and stay healthy through the season.", Rating: 4.9, SessionsCount: 320, Price: "₹1,500/session", Categories: []string{CategoryPostureExpert, CategoryFormCorrection}, IsOnline: true},
		{Name: "Vikram Singh", Subtitle: "Strength & Conditioning Coach", Specialty: "Strength Training", Description: "Builds practical strength programs for team sport athletes.", Rating: 4.8, SessionsCount: 410, Price: "₹1,200/session", Categories: []string{"strength", "push-ups", "squats"}, IsOnline: true},
		{Name: "Anita Desai", Subtitle: "Former National Gymnast", Specialty: "Core & Flexibility", Description: "Focuses on core control and clean movement patterns.", Rating: 4.7, SessionsCount: 275, Price: "₹1,000/session", Categories: []string{"core", "sit-ups", "plank", CategoryFormCorrection}},
		{Name: "Karan Mehta", Subtitle: "Athletics Coach", Specialty: "Speed & Agility", Description: "Sprint mechanics and change of direction for field athletes.", Rating: 4.6, SessionsCount: 198, Price: "₹900/session", Categories: []string{"agility", "shuttle-run"}, IsOnline: true},
		{Name: "Sunita Rao", Subtitle: "Biomechanics Analyst", Specialty: "Movement Technique", Description: "Uses video analysis to fix technique faults quickly.", Rating: 4.9, SessionsCount: 156, Price: "₹1,800/session", Categories: []string{CategoryTechniqueSpecialist, CategoryFormCorrection}},
		{Name: "Rohit Kapoor", Subtitle: "Plyometrics Specialist", Specialty: "Explosive Power", Description: "Jump training and landing mechanics for court sports.", Rating: 4.5, SessionsCount: 134, Price: "₹1,100/session", Categories: []string{"power", "vertical-jump"}},
		{Name: "Farah Khan", Subtitle: "Yoga & Mobility Coach", Specialty: "Posture & Mobility", Description: "Improves posture and mobility for better pose accuracy.", Rating: 4.7, SessionsCount: 289, Price: "₹800/session", Categories: []string{CategoryPostureExpert, "mobility"}, IsOnline: true},
		{Name: "Deepak Nair", Subtitle: "Fitness Assessment Coach", Specialty: "Test Preparation", Description: "Prepares athletes for standardized fitness assessments.", Rating: 4.4, SessionsCount: 97, Price: "₹700/session", Categories: []string{CategoryTechniqueSpecialist, "sit-ups", "push-ups"}},
		{Name: "Lakshmi Menon", Subtitle: "Endurance Coach", Specialty: "Muscular Endurance", Description: "High-rep endurance work without breaking form.", Rating: 4.6, SessionsCount: 212, Price: "₹950/session", Categories: []string{"endurance", "plank", "squats"}},
		{Name: "Aditya Joshi", Subtitle: "Youth Development Coach", Specialty: "Fundamentals", Description: "Patient coaching for beginners building their base.", Rating: 4.3, SessionsCount: 88, Price: "₹600/session", Categories: []string{"beginners", CategoryFormCorrection}, IsOnline: true},
	}
}

func demoProducts(now time.Time) []model.Product {
	return []model.Product{
		{ID: uuid.New(), Name: "Resistance Band Set", Description: "Five bands from light to heavy.", Price: 40, Category: "equipment", IsActive: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Pro Assessment Pack", Description: "Unlock advanced analysis for ten tests.", Price: 60, Category: "digital", IsActive: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Vita Sports T-Shirt", Description: "Breathable training tee.", Price: 80, Category: "apparel", IsActive: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Mentor Session Voucher", Description: "One 30 minute mentor session.", Price: 120, Category: "services", IsActive: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Jump Rope", Description: "Speed rope with ball bearings.", Price: 25, Category: "equipment", IsActive: true, CreatedAt: now},
	}
}

// randomAnalysis produces plausible pose-analysis output for a test.
func randomAnalysis(r *rand.Rand, testID string) *model.MLAnalysis {
	a := &model.MLAnalysis{
		CheatDetected:   r.Float64() < 0.1,
		PoseAccuracy:    utils.Round(70+r.Float64()*30, 1),
		Repetitions:     10 + r.IntN(50),
		FormScore:       utils.Round(65+r.Float64()*35, 1),
		Violations:      []string{},
		ConfidenceScore: utils.Round(0.7+r.Float64()*0.3, 2),
		Recommendations: []string{"Keep a steady tempo", "Focus on full range of motion"},
	}
	if r.Float64() < 0.4 {
		a.Violations = append(a.Violations, demoViolations[r.IntN(len(demoViolations))])
	}
	if testID == "vertical-jump" {
		a.KeyPoints = map[string]any{"jump_height": utils.Round(35+r.Float64()*35, 1)}
	}
	return a
}

func randomResult(r *rand.Rand, userID uuid.UUID, createdAt time.Time) model.NewTestResult {
	testID := demoTestIDs[r.IntN(len(demoTestIDs))]
	completed := createdAt
	return model.NewTestResult{
		UserID:      userID,
		TestID:      testID,
		Score:       utils.Round(40+r.Float64()*60, 1),
		Status:      model.TestStatusCompleted,
		MLAnalysis:  randomAnalysis(r, testID),
		CreatedAt:   createdAt,
		CompletedAt: &completed,
	}
}

// randomPastTime returns a time within the last demoHistoryDays days.
func randomPastTime(r *rand.Rand, now time.Time) time.Time {
	return now.Add(-time.Duration(r.Int64N(int64(demoHistoryDays * 24 * time.Hour))))
}

func demoUser(p demoProfile, hash string, now time.Time) model.DemoUser {
	return model.DemoUser{
		ID:           uuid.New(),
		Email:        p.email,
		Name:         p.name,
		PasswordHash: hash,
		Sport:        p.sport,
		Level:        p.level,
		Credits:      model.InitialCredits,
		CreatedAt:    now.AddDate(0, 0, -demoHistoryDays-1),
	}
}

func buildQuickDataset(r *rand.Rand, now time.Time, hash string) model.DemoDataset {
	var ds model.DemoDataset
	for _, p := range demoProfiles {
		u := demoUser(p, hash, now)
		for range quickSeedResults {
			res := randomResult(r, u.ID, randomPastTime(r, now))
			u.TotalScore += res.Score
			ds.TestResults = append(ds.TestResults, res)
		}
		u.TotalScore = utils.Round(u.TotalScore, 1)
		ds.Users = append(ds.Users, u)
	}
	return ds
}

type demoBuilder struct {
	r         *rand.Rand
	now       time.Time
	mentorIDs []uuid.UUID
	ds        model.DemoDataset
}

// buildDemoDataset generates a consistent dataset: user totals equal the sum
// of their results and cached balances equal the initial grant plus the
// ledger.
func buildDemoDataset(r *rand.Rand, now time.Time, hash string, mentorIDs []uuid.UUID) model.DemoDataset {
	b := &demoBuilder{r: r, now: now, mentorIDs: mentorIDs}
	b.ds.Products = demoProducts(now)

	b.ds.Groups = []model.CommunityGroup{
		{ID: uuid.New(), Name: "Morning Runners", Description: "Early starts and steady miles.", Category: "Running", IsPublic: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Core Crushers", Description: "Daily plank and sit-up challenges.", Category: "Strength", IsPublic: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Jump Squad", Description: "Vertical jump training tips.", Category: "Power", IsPublic: true, CreatedAt: now},
		{ID: uuid.New(), Name: "Form First", Description: "Quality reps over quantity.", Category: "Technique", IsPublic: true, CreatedAt: now},
	}

	b.ds.Challenges = []model.Challenge{
		{ID: uuid.New(), Title: "100 Push-Up Week", Description: "Log 100 push-ups this week.", Type: "push-ups", TargetValue: 100, RewardCredits: 50, StartDate: now.AddDate(0, 0, -2), EndDate: now.AddDate(0, 0, 5), IsActive: true},
		{ID: uuid.New(), Title: "Plank Marathon", Description: "Hold a plank for a combined 10 minutes.", Type: "plank", TargetValue: 600, RewardCredits: 40, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 13), IsActive: true},
		{ID: uuid.New(), Title: "Perfect Form Streak", Description: "Five tests in a row with form above 90.", Type: "form", TargetValue: 5, RewardCredits: 75, StartDate: now, EndDate: now.AddDate(0, 1, 0), IsActive: true},
	}

	for i, p := range demoProfiles {
		u := demoUser(p, hash, now)
		b.history(&u)
		b.community(i, u.ID)
		b.bodyLogs(u.ID)
		b.purchase(&u)
		b.mentoring(u.ID)
		b.ds.Users = append(b.ds.Users, u)
	}

	return b.ds
}

// history adds results, earned credits and the achievements those results
// unlock, replaying submissions in chronological order.
func (b *demoBuilder) history(u *model.DemoUser) {
	n := minDemoResults + b.r.IntN(maxDemoResults-minDemoResults+1)

	times := make([]time.Time, n)
	for i := range times {
		times[i] = randomPastTime(b.r, b.now)
	}
	slices.SortFunc(times, time.Time.Compare)

	unlocked := map[string]bool{}
	for i, at := range times {
		res := randomResult(b.r, u.ID, at)
		u.TotalScore += res.Score
		b.ds.TestResults = append(b.ds.TestResults, res)

		earned := evaluateAchievements(achievementInput{
			TestID:      res.TestID,
			Score:       res.Score,
			Analysis:    res.MLAnalysis,
			ResultCount: i + 1,
		})
		for _, id := range earned {
			if unlocked[id] {
				continue
			}
			unlocked[id] = true
			b.ds.Achievements = append(b.ds.Achievements, model.UserAchievement{UserID: u.ID, AchievementID: id, UnlockedAt: at})
		}

		if res.Score >= passingScore {
			ref := "test_result"
			b.credit(u, model.NewCreditTransaction{
				UserID:        u.ID,
				Amount:        10,
				Type:          model.CreditTypeEarn,
				Description:   fmt.Sprintf("Completed %s with a score of %.1f", res.TestID, res.Score),
				ReferenceType: &ref,
			})
		}
	}
	u.TotalScore = utils.Round(u.TotalScore, 1)
}

func (b *demoBuilder) credit(u *model.DemoUser, tx model.NewCreditTransaction) {
	if tx.ReferenceType != nil && tx.ExpiresAt == nil {
		expires := b.now.Add(creditExpiry)
		tx.ExpiresAt = &expires
	}
	u.Credits += tx.Amount
	b.ds.Credits = append(b.ds.Credits, tx)
}

func (b *demoBuilder) community(i int, userID uuid.UUID) {
	for _, g := range []int{i % len(b.ds.Groups), (i + 1) % len(b.ds.Groups)} {
		b.ds.Memberships = append(b.ds.Memberships, model.GroupMembership{GroupID: b.ds.Groups[g].ID, UserID: userID})
		b.ds.Groups[g].MemberCount++
	}
	for j := range b.ds.Challenges {
		if b.r.IntN(2) == 0 {
			b.ds.Challenges[j].Participants++
		}
	}

	b.ds.Posts = append(b.ds.Posts,
		model.NewCommunityPost{
			UserID:    userID,
			Content:   fmt.Sprintf("Just finished my %s assessment, feeling strong!", demoTestIDs[i%len(demoTestIDs)]),
			Type:      "achievement",
			Likes:     b.r.IntN(40),
			CreatedAt: randomPastTime(b.r, b.now),
		},
		model.NewCommunityPost{
			UserID:    userID,
			Content:   "Any tips for keeping my back straight during push-ups?",
			Type:      "question",
			Likes:     b.r.IntN(15),
			CreatedAt: randomPastTime(b.r, b.now),
		},
	)
}

func (b *demoBuilder) bodyLogs(userID uuid.UUID) {
	weight := 55 + b.r.Float64()*25
	height := utils.Round(160+b.r.Float64()*25, 1)
	for w := range 4 {
		wt := utils.Round(weight+float64(w)*0.4, 1)
		bf := utils.Round(12+b.r.Float64()*13, 1)
		b.ds.BodyLogs = append(b.ds.BodyLogs, model.NewBodyLog{
			UserID:   userID,
			LoggedOn: truncateDay(b.now).AddDate(0, 0, -7*w),
			Weight:   &wt,
			Height:   utils.Ptr(height),
			BodyFat:  &bf,
		})
	}
}

// purchase buys one affordable product, mirroring the checkout ledger row.
func (b *demoBuilder) purchase(u *model.DemoUser) {
	product := b.ds.Products[b.r.IntN(len(b.ds.Products))]
	if product.Price > u.Credits {
		return
	}

	id := uuid.New()
	at := randomPastTime(b.r, b.now)
	b.ds.Purchases = append(b.ds.Purchases, model.DemoPurchase{
		ID:        id,
		UserID:    u.ID,
		ProductID: product.ID,
		Quantity:  1,
		TotalCost: product.Price,
		Status:    "completed",
		CreatedAt: at,
	})

	ref, refType := id.String(), "purchase"
	b.credit(u, model.NewCreditTransaction{
		UserID:        u.ID,
		Amount:        -product.Price,
		Type:          model.CreditTypePurchase,
		Description:   "Purchased " + product.Name,
		ReferenceID:   &ref,
		ReferenceType: &refType,
	})
}

func (b *demoBuilder) mentoring(userID uuid.UUID) {
	if len(b.mentorIDs) == 0 {
		return
	}

	first := b.r.IntN(len(b.mentorIDs))
	b.ds.Sessions = append(b.ds.Sessions,
		model.NewMentorSession{
			UserID:          userID,
			MentorID:        b.mentorIDs[first],
			Topic:           "Review my latest assessment",
			Type:            model.SessionTypeVideoCall,
			Status:          model.SessionStatusCompleted,
			ScheduledAt:     b.now.AddDate(0, 0, -3),
			DurationMinutes: defaultSessionMinutes,
			Rating:          utils.Ptr(float64(4 + b.r.IntN(2))),
		},
		model.NewMentorSession{
			UserID:          userID,
			MentorID:        b.mentorIDs[(first+1)%len(b.mentorIDs)],
			Topic:           "Build a training plan",
			Type:            model.SessionTypeChatSession,
			Status:          model.SessionStatusUpcoming,
			ScheduledAt:     b.now.AddDate(0, 0, 2+b.r.IntN(5)),
			DurationMinutes: 30,
		},
	)

	b.ds.Favorites = append(b.ds.Favorites, model.MentorFavorite{UserID: userID, MentorID: b.mentorIDs[first]})
	if len(b.mentorIDs) > 2 {
		b.ds.Favorites = append(b.ds.Favorites, model.MentorFavorite{UserID: userID, MentorID: b.mentorIDs[(first+2)%len(b.mentorIDs)]})
	}
}
