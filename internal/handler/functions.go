package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/middleware"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/internal/service"
)

// FunctionsHandler exposes every backend function under /functions/:name.
type FunctionsHandler struct {
	Handler
	registry map[string]echo.HandlerFunc
}

func NewFunctionsHandler(s *server.Server, services *service.Services) *FunctionsHandler {
	h := &FunctionsHandler{Handler: NewHandler(s)}
	h.registry = h.register(services)
	return h
}

// Invoke dispatches to the function named by the :name path parameter.
func (h *FunctionsHandler) Invoke(c echo.Context) error {
	name := c.Param("name")
	fn, ok := h.registry[name]
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Unknown function: %s", name), true, nil)
	}
	return fn(c)
}

// Names lists the registered functions in sorted order.
func (h *FunctionsHandler) Names() []string {
	names := make([]string, 0, len(h.registry))
	for name := range h.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// requireSelf allows the call only when the bearer token belongs to userID.
func requireSelf(c echo.Context, userID fmt.Stringer) error {
	caller := middleware.GetUserID(c)
	if caller == "" {
		return errs.NewUnauthorizedError("Unauthorized", false)
	}
	if caller != userID.String() {
		return errs.NewForbiddenError("You can only modify your own account", true)
	}
	return nil
}

func (h *FunctionsHandler) register(svc *service.Services) map[string]echo.HandlerFunc {
	ok := http.StatusOK
	base := h.Handler

	return map[string]echo.HandlerFunc{
		// auth
		"auth:signUp": Handle(base, func(c echo.Context, p *model.SignUpPayload) (*model.AuthResponse, error) {
			return svc.Auth.SignUp(c.Request().Context(), p)
		}, ok),
		"auth:signIn": Handle(base, func(c echo.Context, p *model.SignInPayload) (*model.AuthResponse, error) {
			return svc.Auth.SignIn(c.Request().Context(), p)
		}, ok),

		// users
		"users:getById": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.User, error) {
			return svc.Users.GetByID(c.Request().Context(), p)
		}, ok),
		"users:update": Handle(base, func(c echo.Context, p *model.UpdateUserPayload) (*model.UpdateResult, error) {
			if err := requireSelf(c, p.UserID); err != nil {
				return nil, err
			}
			return svc.Users.Update(c.Request().Context(), p)
		}, ok),
		"users:updateProfile": Handle(base, func(c echo.Context, p *model.UpdateProfilePayload) (*model.UpdateResult, error) {
			if err := requireSelf(c, p.UserID); err != nil {
				return nil, err
			}
			return svc.Users.UpdateProfile(c.Request().Context(), p)
		}, ok),
		"users:getProfileWithStats": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.ProfileWithStats, error) {
			return svc.Users.GetProfileWithStats(c.Request().Context(), p)
		}, ok),
		"users:getDetailedProfile": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.DetailedProfile, error) {
			return svc.Users.GetDetailedProfile(c.Request().Context(), p)
		}, ok),
		"users:getStats": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.UserStats, error) {
			return svc.Users.GetStats(c.Request().Context(), p)
		}, ok),

		// creditPoints
		"creditPoints:getByUser": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.CreditHistory, error) {
			return svc.Credits.GetByUser(c.Request().Context(), p)
		}, ok),
		"creditPoints:addTransaction": Handle(base, func(c echo.Context, p *model.AddCreditPayload) (*model.CreditAddResult, error) {
			if err := requireSelf(c, p.UserID); err != nil {
				return nil, err
			}
			return svc.Credits.AddTransaction(c.Request().Context(), p)
		}, ok),
		"creditPoints:getBalance": Handle(base, func(c echo.Context, p *model.UserIDPayload) (*model.CreditBalance, error) {
			return svc.Credits.GetBalance(c.Request().Context(), p)
		}, ok),

		// tests
		"tests:list": Handle(base, func(c echo.Context, _ *model.EmptyPayload) ([]model.AssessmentTest, error) {
			return svc.Tests.List(), nil
		}, ok),
		"tests:getById": Handle(base, func(c echo.Context, p *model.TestIDPayload) (*model.AssessmentTest, error) {
			return svc.Tests.GetByID(p)
		}, ok),

		// testResults
		"testResults:getByUser": Handle(base, func(c echo.Context, p *model.UserIDPayload) ([]model.TestResult, error) {
			return svc.TestResults.GetByUser(c.Request().Context(), p)
		}, ok),
		"testResults:create": Handle(base, func(c echo.Context, p *model.CreateTestResultPayload) (*model.ResultCreated, error) {
			return svc.TestResults.Create(c.Request().Context(), p)
		}, ok),
		"testResults:complete": Handle(base, func(c echo.Context, p *model.CompleteTestResultPayload) (*model.CompletionResult, error) {
			return svc.TestResults.Complete(c.Request().Context(), p)
		}, ok),
		"testResults:save": Handle(base, func(c echo.Context, p *model.SaveTestResultPayload) (*model.SubmissionResult, error) {
			return svc.TestResults.Save(c.Request().Context(), p)
		}, ok),
		"testResults:submitWithML": Handle(base, func(c echo.Context, p *model.SubmitWithMLPayload) (*model.SubmissionResult, error) {
			return svc.TestResults.SubmitWithML(c.Request().Context(), p)
		}, ok),

		// achievements
		"achievements:list": Handle(base, func(c echo.Context, _ *model.EmptyPayload) ([]model.Achievement, error) {
			return svc.Achievements.List(), nil
		}, ok),
		"achievements:getByUser": Handle(base, func(c echo.Context, p *model.UserIDPayload) ([]model.UnlockedAchievement, error) {
			return svc.Achievements.GetByUser(c.Request().Context(), p)
		}, ok),

		// leaderboard
		"leaderboard:get": Handle(base, func(c echo.Context, p *model.LeaderboardPayload) (*model.Leaderboard, error) {
			return svc.Leaderboard.Get(c.Request().Context(), p)
		}, ok),

		// community
		"community:getPosts": Handle(base, func(c echo.Context, p *model.PostsPayload) ([]model.CommunityPost, error) {
			return svc.Community.GetPosts(c.Request().Context(), p)
		}, ok),
		"community:createPost": Handle(base, func(c echo.Context, p *model.CreatePostPayload) (*model.PostCreated, error) {
			return svc.Community.CreatePost(c.Request().Context(), p)
		}, ok),
		"community:likePost": Handle(base, func(c echo.Context, p *model.LikePostPayload) (*model.LikeResult, error) {
			return svc.Community.LikePost(c.Request().Context(), p)
		}, ok),
		"community:getChallenges": Handle(base, func(c echo.Context, _ *model.EmptyPayload) ([]model.Challenge, error) {
			return svc.Community.GetChallenges(c.Request().Context())
		}, ok),
		"community:getGroups": Handle(base, func(c echo.Context, _ *model.EmptyPayload) ([]model.CommunityGroup, error) {
			return svc.Community.GetGroups(c.Request().Context())
		}, ok),
		"community:joinGroup": Handle(base, func(c echo.Context, p *model.JoinGroupPayload) (*model.JoinResult, error) {
			return svc.Community.JoinGroup(c.Request().Context(), p)
		}, ok),

		// mentors
		"mentors:list": Handle(base, func(c echo.Context, _ *model.EmptyPayload) ([]model.Mentor, error) {
			return svc.Mentors.List(c.Request().Context())
		}, ok),
		"mentors:getByCategory": Handle(base, func(c echo.Context, p *model.CategoryPayload) ([]model.Mentor, error) {
			return svc.Mentors.GetByCategory(c.Request().Context(), p)
		}, ok),
		"mentors:getById": Handle(base, func(c echo.Context, p *model.MentorIDPayload) (*model.Mentor, error) {
			return svc.Mentors.GetByID(c.Request().Context(), p)
		}, ok),
		"mentors:create": Handle(base, func(c echo.Context, p *model.CreateMentorPayload) (*model.Mentor, error) {
			return svc.Mentors.Create(c.Request().Context(), p)
		}, ok),
		"mentors:getWithMatching": Handle(base, func(c echo.Context, p *model.MatchingPayload) ([]model.MatchedMentor, error) {
			return svc.Mentors.GetWithMatching(c.Request().Context(), p)
		}, ok),
		"mentors:getSessions": Handle(base, func(c echo.Context, p *model.UserIDPayload) ([]model.MentorSession, error) {
			return svc.Mentors.GetSessions(c.Request().Context(), p)
		}, ok),
		"mentors:bookSession": Handle(base, func(c echo.Context, p *model.BookSessionPayload) (*model.SessionBooked, error) {
			return svc.Mentors.BookSession(c.Request().Context(), p)
		}, ok),
		"mentors:toggleFavorite": Handle(base, func(c echo.Context, p *model.FavoritePayload) (*model.FavoriteResult, error) {
			return svc.Mentors.ToggleFavorite(c.Request().Context(), p)
		}, ok),
		"mentors:getFavorites": Handle(base, func(c echo.Context, p *model.UserIDPayload) ([]model.Mentor, error) {
			return svc.Mentors.GetFavorites(c.Request().Context(), p)
		}, ok),

		// emails
		"emails:sendTestResult": Handle(base, func(c echo.Context, p *model.SendTestResultPayload) (*model.EmailSendResult, error) {
			return svc.Email.SendTestResult(c.Request().Context(), p)
		}, ok),
		"emails:preview": Handle(base, func(c echo.Context, p *model.PreviewPayload) (*model.EmailPreview, error) {
			return svc.Email.Preview(p)
		}, ok),

		// store
		"store:getProducts": Handle(base, func(c echo.Context, p *model.ProductsPayload) ([]model.Product, error) {
			return svc.Store.GetProducts(c.Request().Context(), p)
		}, ok),
		"store:getProductById": Handle(base, func(c echo.Context, p *model.ProductIDPayload) (*model.Product, error) {
			return svc.Store.GetProductByID(c.Request().Context(), p)
		}, ok),
		"store:purchase": Handle(base, func(c echo.Context, p *model.PurchasePayload) (*model.PurchaseResult, error) {
			if err := requireSelf(c, p.UserID); err != nil {
				return nil, err
			}
			return svc.Store.Purchase(c.Request().Context(), p)
		}, ok),
		"store:getPurchases": Handle(base, func(c echo.Context, p *model.UserIDPayload) ([]model.Purchase, error) {
			return svc.Store.GetPurchases(c.Request().Context(), p)
		}, ok),

		// bodyLogs
		"bodyLogs:create": Handle(base, func(c echo.Context, p *model.CreateBodyLogPayload) (*model.BodyLogCreated, error) {
			return svc.BodyLogs.Create(c.Request().Context(), p)
		}, ok),
		"bodyLogs:getByUser": Handle(base, func(c echo.Context, p *model.BodyLogsPayload) ([]model.BodyLog, error) {
			return svc.BodyLogs.GetByUser(c.Request().Context(), p)
		}, ok),

		// analytics
		"analytics:getRealtime": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.RealtimeAnalytics, error) {
			return svc.Analytics.GetRealtime(c.Request().Context())
		}, ok),

		// storage
		"storage:generateUploadUrl": Handle(base, func(c echo.Context, p *model.UploadURLPayload) (*model.UploadURL, error) {
			return svc.Storage.GenerateUploadURL(c.Request().Context(), p)
		}, ok),

		// admin
		"admin:seedDemoMentors": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.SeedResult, error) {
			return svc.Demo.SeedMentors(c.Request().Context())
		}, ok),
		"admin:seedDemoData": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.SeedResult, error) {
			return svc.Demo.SeedData(c.Request().Context())
		}, ok),
		"admin:quickSeed": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.SeedResult, error) {
			return svc.Demo.QuickSeed(c.Request().Context())
		}, ok),
		"admin:clearDemoData": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.SeedResult, error) {
			return svc.Demo.ClearData(c.Request().Context())
		}, ok),
		"admin:clearMentors": Handle(base, func(c echo.Context, _ *model.EmptyPayload) (*model.SeedResult, error) {
			return svc.Demo.ClearMentors(c.Request().Context())
		}, ok),
	}
}
