package service

import (
	"testing"

	"fitsync_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func commentNode(id uint, parentID *uint, content string) *CommentView {
	c := model.Comment{PostID: 1, ParentID: parentID, Content: content}
	c.ID = id
	return &CommentView{Comment: c}
}

func parentRef(id uint) *uint {
	return &id
}

func TestAssembleCommentTreeNestsReplies(t *testing.T) {
	nodes := []*CommentView{
		commentNode(1, nil, "根评论"),
		commentNode(2, parentRef(1), "回复"),
		commentNode(3, nil, "另一条根评论"),
	}

	tree := assembleCommentTree(nodes)

	assert.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].Comment.ID)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, uint(2), tree[0].Replies[0].Comment.ID)
	assert.Empty(t, tree[1].Replies)
}

func TestAssembleCommentTreeDeepNesting(t *testing.T) {
	// 楼中楼的回复也要出现在树里
	nodes := []*CommentView{
		commentNode(1, nil, "根评论"),
		commentNode(2, parentRef(1), "一级回复"),
		commentNode(3, parentRef(2), "二级回复"),
	}

	tree := assembleCommentTree(nodes)

	assert.Len(t, tree, 1)
	assert.Len(t, tree[0].Replies, 1)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(3), tree[0].Replies[0].Replies[0].Comment.ID)
}

func TestAssembleCommentTreeSiblingReplies(t *testing.T) {
	nodes := []*CommentView{
		commentNode(1, nil, "根评论"),
		commentNode(2, parentRef(1), "回复一"),
		commentNode(3, parentRef(1), "回复二"),
	}

	tree := assembleCommentTree(nodes)

	assert.Len(t, tree, 1)
	assert.Len(t, tree[0].Replies, 2)
	assert.Equal(t, uint(2), tree[0].Replies[0].Comment.ID)
	assert.Equal(t, uint(3), tree[0].Replies[1].Comment.ID)
}

func TestAssembleCommentTreeOrphanBecomesRoot(t *testing.T) {
	// 父评论已删除时提升为根节点
	nodes := []*CommentView{
		commentNode(1, nil, "根评论"),
		commentNode(5, parentRef(99), "父评论已删除"),
	}

	tree := assembleCommentTree(nodes)

	assert.Len(t, tree, 2)
	assert.Equal(t, uint(5), tree[1].Comment.ID)
}

func TestAssembleCommentTreeEmpty(t *testing.T) {
	assert.Empty(t, assembleCommentTree(nil))
}
