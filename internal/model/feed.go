package model

import "encoding/json"

type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityFriends PostVisibility = "friends"
	VisibilityPrivate PostVisibility = "private"
)

type ReferenceType string

const (
	RefProgramSession ReferenceType = "program_session"
	RefFoodLog        ReferenceType = "food_log"
	RefPost           ReferenceType = "post"
)

// swagger:model Post
// Post 社区动态
type Post struct {
	BaseModel
	UserID        uint            `gorm:"not null;index" json:"userId"`
	Title         string          `gorm:"size:200;default:'Untitled'" json:"title"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Images        json.RawMessage `gorm:"type:json" json:"images,omitempty"` // JSON: []string 存储URL
	Visibility    PostVisibility  `gorm:"type:enum('public','friends','private');default:'public';index" json:"visibility"`
	ReferenceType ReferenceType   `gorm:"size:30" json:"referenceType,omitempty"`
	ReferenceID   uint            `gorm:"default:0" json:"referenceId,omitempty"`
	ViewCount     int             `gorm:"default:0" json:"viewCount"`
	CommentCount  int             `gorm:"default:0" json:"commentCount"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// swagger:model Comment
// Comment 评论，ParentID 为空时是顶层评论
type Comment struct {
	BaseModel
	PostID   uint   `gorm:"not null;index" json:"postId"`
	ParentID *uint  `gorm:"index" json:"parentId,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

type ReactionKind string

const (
	ReactLike  ReactionKind = "like"
	ReactLove  ReactionKind = "love"
	ReactHaha  ReactionKind = "haha"
	ReactWow   ReactionKind = "wow"
	ReactSad   ReactionKind = "sad"
	ReactAngry ReactionKind = "angry"
)

// Reaction 表态，同一用户对同一目标最多一条
type Reaction struct {
	BaseModel
	UserID     uint         `gorm:"not null;uniqueIndex:uniq_reaction_user_target" json:"userId"`
	TargetType TargetType   `gorm:"type:enum('post','comment');not null;uniqueIndex:uniq_reaction_user_target" json:"targetType"`
	TargetID   uint         `gorm:"not null;uniqueIndex:uniq_reaction_user_target" json:"targetId"`
	Kind       ReactionKind `gorm:"type:enum('like','love','haha','wow','sad','angry');not null" json:"kind"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// Vote 赞踩，Value 取 +1 / -1，同一用户对同一目标最多一条
type Vote struct {
	BaseModel
	UserID     uint       `gorm:"not null;uniqueIndex:uniq_vote_user_target" json:"userId"`
	TargetType TargetType `gorm:"type:enum('post','comment');not null;uniqueIndex:uniq_vote_user_target" json:"targetType"`
	TargetID   uint       `gorm:"not null;uniqueIndex:uniq_vote_user_target" json:"targetId"`
	Value      int        `gorm:"not null" json:"value"`
}

func (Vote) TableName() string {
	return "votes"
}
