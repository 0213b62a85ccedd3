package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FeedService struct {
	Repo *repository.FeedRepository
	RDB  *redis.Client
}

func NewFeedService(repo *repository.FeedRepository, rdb *redis.Client) *FeedService {
	return &FeedService{Repo: repo, RDB: rdb}
}

type PostInput struct {
	Title         string               `json:"title"`
	Content       string               `json:"content" binding:"required"`
	Images        []string             `json:"images"`
	Visibility    model.PostVisibility `json:"visibility"`
	ReferenceType model.ReferenceType  `json:"referenceType"`
	ReferenceID   uint                 `json:"referenceId"`
}

func (s *FeedService) CreatePost(userID uint, input PostInput) (*model.Post, error) {
	p := &model.Post{
		UserID:        userID,
		Title:         input.Title,
		Content:       input.Content,
		Visibility:    input.Visibility,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
	}
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if p.Visibility == "" {
		p.Visibility = model.VisibilityPublic
	}
	if len(input.Images) > 0 {
		p.Images, _ = json.Marshal(input.Images)
	}
	if err := s.Repo.CreatePost(p); err != nil {
		return nil, err
	}
	return p, nil
}

// PostView 动态详情，附带计数
type PostView struct {
	Post           *model.Post                    `json:"post"`
	Score          int64                          `json:"score"`
	ReactionCounts map[model.ReactionKind]int64   `json:"reactionCounts"`
	Comments       []CommentView                  `json:"comments,omitempty"`
}

// CommentView 评论树节点
type CommentView struct {
	Comment model.Comment `json:"comment"`
	Score   int64         `json:"score"`
	Replies []CommentView `json:"replies,omitempty"`
}

// GetPost 动态详情。同一用户 10 分钟内重复浏览不重复计数，用 Redis SetNX 去重
func (s *FeedService) GetPost(ctx context.Context, viewerID, postID uint) (*PostView, error) {
	p, err := s.Repo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if p.Visibility == model.VisibilityPrivate && p.UserID != viewerID {
		return nil, util.ErrPermissionDenied
	}

	dedupKey := fmt.Sprintf("post:view:%d:%d", postID, viewerID)
	ok, err := s.RDB.SetNX(ctx, dedupKey, 1, 10*time.Minute).Result()
	if err == nil && ok {
		if err := s.Repo.IncrementViewCount(postID); err == nil {
			p.ViewCount++
		}
	}

	score, err := s.Repo.VoteScore(model.TargetPost, postID)
	if err != nil {
		return nil, err
	}
	reactions, err := s.Repo.ReactionCounts(model.TargetPost, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentTree(postID)
	if err != nil {
		return nil, err
	}

	return &PostView{
		Post:           p,
		Score:          score,
		ReactionCounts: reactions,
		Comments:       comments,
	}, nil
}

// commentTree 组装嵌套评论
func (s *FeedService) commentTree(postID uint) ([]CommentView, error) {
	comments, err := s.Repo.ListComments(postID)
	if err != nil {
		return nil, err
	}

	nodes := make([]*CommentView, 0, len(comments))
	for i := range comments {
		score, err := s.Repo.VoteScore(model.TargetComment, comments[i].ID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &CommentView{Comment: comments[i], Score: score})
	}
	return assembleCommentTree(nodes), nil
}

// assembleCommentTree 把按创建时间升序排列的评论节点组装成嵌套结构。
// 先按父子关系归拢全部回复，再落盘根节点，避免子节点挂接不到已拷贝的父节点。
// 父评论被删除的回复提升为根节点。
func assembleCommentTree(nodes []*CommentView) []CommentView {
	byID := make(map[uint]*CommentView, len(nodes))
	for _, n := range nodes {
		byID[n.Comment.ID] = n
	}

	children := make(map[uint][]*CommentView)
	var roots []*CommentView
	for _, n := range nodes {
		if n.Comment.ParentID != nil {
			if _, ok := byID[*n.Comment.ParentID]; ok {
				children[*n.Comment.ParentID] = append(children[*n.Comment.ParentID], n)
				continue
			}
		}
		roots = append(roots, n)
	}

	var materialize func(n *CommentView) CommentView
	materialize = func(n *CommentView) CommentView {
		out := CommentView{Comment: n.Comment, Score: n.Score}
		for _, child := range children[n.Comment.ID] {
			out.Replies = append(out.Replies, materialize(child))
		}
		return out
	}

	result := make([]CommentView, 0, len(roots))
	for _, r := range roots {
		result = append(result, materialize(r))
	}
	return result
}

func (s *FeedService) ListFeed(viewerID uint, page, limit int) ([]model.Post, int64, error) {
	return s.Repo.ListFeed(viewerID, page, limit)
}

func (s *FeedService) findOwnedPost(userID, postID uint, allowAdmin bool, role model.UserRole) (*model.Post, error) {
	p, err := s.Repo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if p.UserID != userID && !(allowAdmin && role == model.RoleAdmin) {
		return nil, util.ErrPermissionDenied
	}
	return p, nil
}

func (s *FeedService) UpdatePost(userID, postID uint, input PostInput) (*model.Post, error) {
	p, err := s.findOwnedPost(userID, postID, false, "")
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		p.Title = input.Title
	}
	p.Content = input.Content
	if input.Visibility != "" {
		p.Visibility = input.Visibility
	}
	if len(input.Images) > 0 {
		p.Images, _ = json.Marshal(input.Images)
	}
	if err := s.Repo.UpdatePost(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FeedService) DeletePost(userID uint, role model.UserRole, postID uint) error {
	p, err := s.findOwnedPost(userID, postID, true, role)
	if err != nil {
		return err
	}
	return s.Repo.DeletePost(p.ID)
}

type CommentInput struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func (s *FeedService) CreateComment(userID, postID uint, input CommentInput) (*model.Comment, error) {
	if _, err := s.Repo.FindPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if input.ParentID != nil {
		parent, err := s.Repo.FindCommentByID(*input.ParentID)
		if err != nil || parent.PostID != postID {
			return nil, util.ErrCommentNotFound
		}
	}

	c := &model.Comment{
		PostID:   postID,
		ParentID: input.ParentID,
		UserID:   userID,
		Content:  input.Content,
	}
	if err := s.Repo.CreateComment(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *FeedService) DeleteComment(userID uint, role model.UserRole, commentID uint) error {
	c, err := s.Repo.FindCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCommentNotFound
		}
		return err
	}
	if c.UserID != userID && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}
	return s.Repo.DeleteComment(c)
}

// React 对动态或评论表态，重复同类表态视为取消
func (s *FeedService) React(userID uint, targetType model.TargetType, targetID uint, kind model.ReactionKind) (*model.Reaction, error) {
	if err := s.ensureTarget(targetType, targetID); err != nil {
		return nil, err
	}
	return s.Repo.SetReaction(userID, targetType, targetID, kind)
}

// Vote 赞踩，value 取 +1 / -1
func (s *FeedService) Vote(userID uint, targetType model.TargetType, targetID uint, value int) (int64, error) {
	if err := s.ensureTarget(targetType, targetID); err != nil {
		return 0, err
	}
	if err := s.Repo.SetVote(userID, targetType, targetID, value); err != nil {
		return 0, err
	}
	return s.Repo.VoteScore(targetType, targetID)
}

func (s *FeedService) ensureTarget(targetType model.TargetType, targetID uint) error {
	switch targetType {
	case model.TargetPost:
		if _, err := s.Repo.FindPostByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrPostNotFound
			}
			return err
		}
	case model.TargetComment:
		if _, err := s.Repo.FindCommentByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCommentNotFound
			}
			return err
		}
	default:
		return util.ErrPostNotFound
	}
	return nil
}
