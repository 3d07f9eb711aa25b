package service

import (
	"context"
	"fmt"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// CommunityService handles farmer posts, likes and comments
type CommunityService struct {
	posts domain.CommunityRepository
	users domain.UserRepository
}

func NewCommunityService(posts domain.CommunityRepository, users domain.UserRepository) *CommunityService {
	return &CommunityService{posts: posts, users: users}
}

func (s *CommunityService) Posts(ctx context.Context, q domain.PostQuery) (*domain.PostList, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	posts, total, err := s.posts.ListPosts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return &domain.PostList{Posts: posts, Total: total}, nil
}

func (s *CommunityService) author(ctx context.Context, userID int64) (domain.PostAuthor, string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.PostAuthor{}, "", fmt.Errorf("failed to get user: %w", err)
	}
	return domain.PostAuthor{
		ID:       user.ID,
		Name:     user.Name,
		District: user.District,
		State:    user.State,
	}, user.PreferredLanguage, nil
}

func (s *CommunityService) CreatePost(ctx context.Context, userID int64, in domain.NewPost) (*domain.CreatePostResponse, error) {
	author, lang, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := s.posts.CreatePost(ctx, author, in, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &domain.CreatePostResponse{Message: "Post created successfully", PostID: id}, nil
}

func (s *CommunityService) Post(ctx context.Context, id int64) (*domain.PostDetail, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *CommunityService) Like(ctx context.Context, userID, postID int64) (*domain.LikeResponse, error) {
	n, err := s.posts.LikePost(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}
	return &domain.LikeResponse{Message: "Post liked successfully", LikesCount: n}, nil
}

func (s *CommunityService) Comment(ctx context.Context, userID, postID int64, in domain.NewComment) (*domain.CommentResponse, error) {
	author, lang, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := s.posts.AddComment(ctx, postID, author, in.Content, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &domain.CommentResponse{Message: "Comment added successfully", CommentID: id}, nil
}
