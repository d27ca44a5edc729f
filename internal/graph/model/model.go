// Package model holds the domain types exposed through the GraphQL schema.
package model

import "slices"

// User is a member of the demo dataset. Height is stored in centimetres and
// weight in kilograms; the resolvers convert on request.
type User struct {
	ID        int     `yaml:"id"`
	Name      string  `yaml:"name"`
	Age       int     `yaml:"age"`
	FriendIDs []int   `yaml:"friendIds,omitempty"`
	Height    float64 `yaml:"height"`
	Weight    float64 `yaml:"weight"`
}

// Clone returns a copy of u that shares no memory with it.
func (u User) Clone() User {
	u.FriendIDs = slices.Clone(u.FriendIDs)
	return u
}

// IsFriend reports whether id appears in the user's friend list.
func (u User) IsFriend(id int) bool {
	return slices.Contains(u.FriendIDs, id)
}

// Post is a piece of content written by a user.
type Post struct {
	ID           int     `yaml:"id"`
	AuthorID     int     `yaml:"authorId"`
	Title        string  `yaml:"title"`
	Content      *string `yaml:"content,omitempty"`
	LikeGiverIDs []int   `yaml:"likeGiverIds,omitempty"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Post) Clone() Post {
	if p.Content != nil {
		content := *p.Content
		p.Content = &content
	}
	p.LikeGiverIDs = slices.Clone(p.LikeGiverIDs)
	if p.LikeGiverIDs == nil {
		p.LikeGiverIDs = []int{}
	}
	return p
}

// LikedBy reports whether the user with the given id likes the post.
func (p Post) LikedBy(userID int) bool {
	return slices.Contains(p.LikeGiverIDs, userID)
}

// AddPostInput carries the arguments of the addPost mutation.
type AddPostInput struct {
	Title   string
	Content *string
}
