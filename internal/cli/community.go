package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var communityCommands = map[string]command{
	"posts":   {"[--limit N --offset N --type T --crop C]", communityPosts},
	"post":    {"--title T --content C --type question|tip|experience|discussion [--crop C --tags T]", communityCreate},
	"show":    {"ID", communityShow},
	"like":    {"ID", communityLike},
	"comment": {"ID TEXT...", communityComment},
}

// idArg parses the i-th positional argument as an ID
func idArg(cmd string, args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, usageErrorf("%s: missing ID", cmd)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("%s: invalid ID %q", cmd, args[i])
	}
	return id, nil
}

func communityPosts(ctx context.Context, a *App, args []string) error {
	fs := a.flags("community posts")
	var q domain.PostQuery
	fs.IntVar(&q.Limit, "limit", 0, "posts to return")
	fs.IntVar(&q.Offset, "offset", 0, "posts to skip")
	fs.StringVar(&q.PostType, "type", "", "question, tip, experience or discussion")
	fs.StringVar(&q.CropCategory, "crop", "", "crop category")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Community.Posts(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func communityCreate(ctx context.Context, a *App, args []string) error {
	fs := a.flags("community post")
	title := fs.String("title", "", "post title")
	content := fs.String("content", "", "post body")
	postType := fs.String("type", "question", "question, tip, experience or discussion")
	crop := fs.String("crop", "", "crop category")
	tags := fs.String("tags", "", "topic tags, comma separated")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("community post", fs, "title", "content"); err != nil {
		return err
	}

	resp, err := a.client.Community.CreatePost(ctx, a.sess, domain.NewPost{
		Title:        *title,
		Content:      *content,
		PostType:     *postType,
		CropCategory: optional(fs, "crop", *crop),
		TopicTags:    optional(fs, "tags", *tags),
	})
	if err != nil {
		return err
	}
	return a.print(resp)
}

func communityShow(ctx context.Context, a *App, args []string) error {
	id, err := idArg("community show", args, 0)
	if err != nil {
		return err
	}
	resp, err := a.client.Community.Post(ctx, a.sess, id)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func communityLike(ctx context.Context, a *App, args []string) error {
	id, err := idArg("community like", args, 0)
	if err != nil {
		return err
	}
	resp, err := a.client.Community.Like(ctx, a.sess, id)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func communityComment(ctx context.Context, a *App, args []string) error {
	id, err := idArg("community comment", args, 0)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageErrorf("community comment: missing TEXT")
	}
	resp, err := a.client.Community.Comment(ctx, a.sess, id, domain.NewComment{Content: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	return a.print(resp)
}
