package domain

// PostQuery filters /community/posts. Zero values are not sent.
type PostQuery struct {
	Limit        int
	Offset       int
	PostType     string
	CropCategory string
}

// PostAuthor is the public slice of a user shown next to posts and comments
type PostAuthor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
}

type CommunityPost struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	PostType      string     `json:"post_type"`
	CropCategory  *string    `json:"crop_category,omitempty"`
	TopicTags     *string    `json:"topic_tags,omitempty"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	ViewsCount    int        `json:"views_count"`
	IsFeatured    bool       `json:"is_featured"`
	IsPinned      bool       `json:"is_pinned"`
	Language      string     `json:"language"`
	CreatedAt     Timestamp  `json:"created_at"`
	User          PostAuthor `json:"user"`
}

type PostList struct {
	Posts []CommunityPost `json:"posts"`
	Total int             `json:"total"`
}

type Comment struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	LikesCount int        `json:"likes_count"`
	Language   string     `json:"language"`
	CreatedAt  Timestamp  `json:"created_at"`
	User       PostAuthor `json:"user"`
}

// PostDetail is a post together with its comments
type PostDetail struct {
	Post     CommunityPost `json:"post"`
	Comments []Comment     `json:"comments"`
}

// NewPost is the body of a create-post call
type NewPost struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Content      string  `json:"content" validate:"required"`
	PostType     string  `json:"post_type" validate:"required,oneof=question tip experience discussion"`
	CropCategory *string `json:"crop_category,omitempty"`
	TopicTags    *string `json:"topic_tags,omitempty"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	PostID  int64  `json:"post_id"`
}

type LikeResponse struct {
	Message    string `json:"message"`
	LikesCount int    `json:"likes_count"`
}

// NewComment is the body of a comment call
type NewComment struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type CommentResponse struct {
	Message   string `json:"message"`
	CommentID int64  `json:"comment_id"`
}
