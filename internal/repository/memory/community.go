package memory

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// ListPosts returns pinned posts first, then newest first
func (s *Store) ListPosts(_ context.Context, q domain.PostQuery) ([]domain.CommunityPost, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pinned, rest []domain.CommunityPost
	for _, id := range sortedIDs(s.posts) {
		post := s.posts[id].post
		if q.PostType != "" && post.PostType != q.PostType {
			continue
		}
		if q.CropCategory != "" && (post.CropCategory == nil || *post.CropCategory != q.CropCategory) {
			continue
		}
		if post.IsPinned {
			pinned = append(pinned, post)
		} else {
			rest = append(rest, post)
		}
	}
	all := append(pinned, rest...)
	return page(all, q.Limit, q.Offset), len(all), nil
}

func (s *Store) CreatePost(_ context.Context, author domain.PostAuthor, in domain.NewPost, language string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id()
	s.posts[id] = &postRecord{
		post: domain.CommunityPost{
			ID:           id,
			Title:        in.Title,
			Content:      in.Content,
			PostType:     in.PostType,
			CropCategory: in.CropCategory,
			TopicTags:    in.TopicTags,
			Language:     language,
			CreatedAt:    s.timestamp(),
			User:         author,
		},
		likedBy: make(map[int64]bool),
	}
	return id, nil
}

// GetPost counts as a view
func (s *Store) GetPost(_ context.Context, id int64) (*domain.PostDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.post.ViewsCount++

	comments := make([]domain.Comment, len(rec.comments))
	copy(comments, rec.comments)
	return &domain.PostDetail{Post: rec.post, Comments: comments}, nil
}

// LikePost records one like per user and returns the new total
func (s *Store) LikePost(_ context.Context, postID, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[postID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if !rec.likedBy[userID] {
		rec.likedBy[userID] = true
		rec.post.LikesCount++
	}
	return rec.post.LikesCount, nil
}

func (s *Store) AddComment(_ context.Context, postID int64, author domain.PostAuthor, content, language string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[postID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	id := s.id()
	rec.comments = append(rec.comments, domain.Comment{
		ID:        id,
		Content:   content,
		Language:  language,
		CreatedAt: s.timestamp(),
		User:      author,
	})
	rec.post.CommentsCount++
	return id, nil
}
