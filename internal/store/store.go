// Package store provides a thread-safe in-memory store for the users and
// posts served by the GraphQL API.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rhanlin/graphql-demo/internal/graph/model"
)

var ErrPostNotFound = errors.New("post not found")

// Store is the data access contract used by the resolvers.
type Store interface {
	Users() []model.User
	Posts() []model.Post
	UserByID(id int) (model.User, bool)
	UserByName(name string) (model.User, bool)
	PostByID(id int) (model.Post, bool)
	PostsByAuthor(authorID int) []model.Post
	AddPost(authorID int, input model.AddPostInput) model.Post
	ToggleLike(postID, userID int) (model.Post, error)
}

// Memory holds both collections in memory. Users are fixed after
// construction; posts only grow or change their like-givers.
type Memory struct {
	mu    sync.RWMutex
	users []model.User
	posts []model.Post
}

var _ Store = (*Memory)(nil)

// New creates a Memory store owning copies of the given collections.
func New(users []model.User, posts []model.Post) *Memory {
	m := &Memory{
		users: make([]model.User, 0, len(users)),
		posts: make([]model.Post, 0, len(posts)),
	}
	for _, u := range users {
		m.users = append(m.users, u.Clone())
	}
	for _, p := range posts {
		m.posts = append(m.posts, p.Clone())
	}
	return m
}

// Users returns all users in storage order.
func (m *Memory) Users() []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]model.User, len(m.users))
	for i, u := range m.users {
		result[i] = u.Clone()
	}
	return result
}

// Posts returns all posts in storage order.
func (m *Memory) Posts() []model.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clonePosts(m.posts)
}

// UserByID finds a user by id.
func (m *Memory) UserByID(id int) (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := FindUserByID(m.users, id)
	return u.Clone(), ok
}

// UserByName finds a user by exact name.
func (m *Memory) UserByName(name string) (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := FindUserByName(m.users, name)
	return u.Clone(), ok
}

// PostByID finds a post by id.
func (m *Memory) PostByID(id int) (model.Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := FindPostByID(m.posts, id)
	if !ok {
		return model.Post{}, false
	}
	return p.Clone(), true
}

// PostsByAuthor returns the posts written by authorID in insertion order.
func (m *Memory) PostsByAuthor(authorID int) []model.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clonePosts(PostsByAuthor(m.posts, authorID))
}

// AddPost appends a new post by authorID and returns it. The id is allocated
// under the same lock as the append, so concurrent callers never share one.
func (m *Memory) AddPost(authorID int, input model.AddPostInput) model.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := model.Post{
		ID:           m.nextPostID(),
		AuthorID:     authorID,
		Title:        input.Title,
		Content:      input.Content,
		LikeGiverIDs: []int{},
	}
	p = p.Clone()
	m.posts = append(m.posts, p)

	return p.Clone()
}

// ToggleLike adds userID to the post's like-givers, or removes it if the user
// already likes the post.
func (m *Memory) ToggleLike(postID, userID int) (model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOfPost(m.posts, postID)
	if i < 0 {
		return model.Post{}, fmt.Errorf("post %d: %w", postID, ErrPostNotFound)
	}

	p := &m.posts[i]
	if j := slices.Index(p.LikeGiverIDs, userID); j >= 0 {
		p.LikeGiverIDs = slices.Delete(slices.Clone(p.LikeGiverIDs), j, j+1)
	} else {
		p.LikeGiverIDs = append(slices.Clone(p.LikeGiverIDs), userID)
	}

	return p.Clone(), nil
}

// nextPostID returns one past the highest post id (must be called with lock held).
func (m *Memory) nextPostID() int {
	highest := 0
	for _, p := range m.posts {
		highest = max(highest, p.ID)
	}
	return highest + 1
}

func clonePosts(posts []model.Post) []model.Post {
	result := make([]model.Post, len(posts))
	for i, p := range posts {
		result[i] = p.Clone()
	}
	return result
}
