package repository

import (
	"errors"
	"fitsync_backend/internal/model"

	"gorm.io/gorm"
)

type FeedRepository struct {
	DB *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{DB: db}
}

func (r *FeedRepository) CreatePost(p *model.Post) error {
	return r.DB.Create(p).Error
}

func (r *FeedRepository) FindPostByID(id uint) (*model.Post, error) {
	var p model.Post
	err := r.DB.Preload("User").First(&p, id).Error
	return &p, err
}

func (r *FeedRepository) UpdatePost(p *model.Post) error {
	return r.DB.Save(p).Error
}

func (r *FeedRepository) DeletePost(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

// ListFeed 列出对 viewer 可见的动态：公开的 + 自己的
func (r *FeedRepository) ListFeed(viewerID uint, page, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64
	query := r.DB.Model(&model.Post{}).
		Where("visibility = ? OR user_id = ?", model.VisibilityPublic, viewerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *FeedRepository) IncrementViewCount(postID uint) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// 评论

func (r *FeedRepository) CreateComment(c *model.Comment) error {
	err := r.DB.Create(c).Error
	if err != nil {
		return err
	}
	return r.DB.Model(&model.Post{}).Where("id = ?", c.PostID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
}

func (r *FeedRepository) FindCommentByID(id uint) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *FeedRepository) DeleteComment(c *model.Comment) error {
	if err := r.DB.Delete(c).Error; err != nil {
		return err
	}
	return r.DB.Model(&model.Post{}).Where("id = ? AND comment_count > 0", c.PostID).
		UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
}

func (r *FeedRepository) ListComments(postID uint) ([]model.Comment, error) {
	var cs []model.Comment
	err := r.DB.Preload("User").Where("post_id = ?", postID).Order("created_at asc").Find(&cs).Error
	return cs, err
}

// 表态：同一用户对同一目标只保留一条，kind 相同则视为取消
func (r *FeedRepository) SetReaction(userID uint, targetType model.TargetType, targetID uint, kind model.ReactionKind) (*model.Reaction, error) {
	var existing model.Reaction
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction := &model.Reaction{UserID: userID, TargetType: targetType, TargetID: targetID, Kind: kind}
		return reaction, r.DB.Create(reaction).Error
	}
	if err != nil {
		return nil, err
	}
	if existing.Kind == kind {
		return nil, r.DB.Delete(&existing).Error
	}
	existing.Kind = kind
	return &existing, r.DB.Save(&existing).Error
}

func (r *FeedRepository) ReactionCounts(targetType model.TargetType, targetID uint) (map[model.ReactionKind]int64, error) {
	type row struct {
		Kind  model.ReactionKind
		Count int64
	}
	var rows []row
	err := r.DB.Model(&model.Reaction{}).
		Select("kind, COUNT(*) as count").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Group("kind").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.ReactionKind]int64, len(rows))
	for _, r := range rows {
		counts[r.Kind] = r.Count
	}
	return counts, nil
}

// 赞踩：再次投相同方向视为取消，反向则改票
func (r *FeedRepository) SetVote(userID uint, targetType model.TargetType, targetID uint, value int) error {
	var existing model.Vote
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&model.Vote{UserID: userID, TargetType: targetType, TargetID: targetID, Value: value}).Error
	}
	if err != nil {
		return err
	}
	if existing.Value == value {
		return r.DB.Delete(&existing).Error
	}
	existing.Value = value
	return r.DB.Save(&existing).Error
}

func (r *FeedRepository) VoteScore(targetType model.TargetType, targetID uint) (int64, error) {
	var score int64
	err := r.DB.Model(&model.Vote{}).
		Select("COALESCE(SUM(value),0)").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Scan(&score).Error
	return score, err
}
