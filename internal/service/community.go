package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/model"
)

const (
	defaultPostsLimit = 20
	maxPostsLimit     = 100
	defaultPostType   = "general"
)

type communityStore interface {
	ListPosts(ctx context.Context, limit int) ([]model.CommunityPost, error)
	CreatePost(ctx context.Context, in model.NewCommunityPost) (uuid.UUID, error)
	LikePost(ctx context.Context, postID uuid.UUID) (int, error)
	ActiveChallenges(ctx context.Context) ([]model.Challenge, error)
	PublicGroups(ctx context.Context) ([]model.CommunityGroup, error)
	JoinGroup(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

type CommunityService struct {
	community communityStore
	now       func() time.Time
}

func NewCommunityService(community communityStore) *CommunityService {
	return &CommunityService{community: community, now: time.Now}
}

func (s *CommunityService) GetPosts(ctx context.Context, p *model.PostsPayload) ([]model.CommunityPost, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPostsLimit
	}
	limit = min(limit, maxPostsLimit)

	posts, err := s.community.ListPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.CommunityPost{}
	}
	return posts, nil
}

func (s *CommunityService) CreatePost(ctx context.Context, p *model.CreatePostPayload) (*model.PostCreated, error) {
	postType := strings.TrimSpace(p.Type)
	if postType == "" {
		postType = defaultPostType
	}

	id, err := s.community.CreatePost(ctx, model.NewCommunityPost{
		UserID:    p.UserID,
		Content:   strings.TrimSpace(p.Content),
		Type:      postType,
		ImageURL:  p.ImageURL,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	return &model.PostCreated{PostID: id}, nil
}

func (s *CommunityService) LikePost(ctx context.Context, p *model.LikePostPayload) (*model.LikeResult, error) {
	likes, err := s.community.LikePost(ctx, p.PostID)
	if err != nil {
		return nil, err
	}
	return &model.LikeResult{Success: true, Likes: likes}, nil
}

func (s *CommunityService) GetChallenges(ctx context.Context) ([]model.Challenge, error) {
	challenges, err := s.community.ActiveChallenges(ctx)
	if err != nil {
		return nil, err
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	return challenges, nil
}

func (s *CommunityService) GetGroups(ctx context.Context) ([]model.CommunityGroup, error) {
	groups, err := s.community.PublicGroups(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.CommunityGroup{}
	}
	return groups, nil
}

func (s *CommunityService) JoinGroup(ctx context.Context, p *model.JoinGroupPayload) (*model.JoinResult, error) {
	joined, err := s.community.JoinGroup(ctx, p.GroupID, p.UserID)
	if err != nil {
		return nil, err
	}
	return &model.JoinResult{Joined: joined}, nil
}
