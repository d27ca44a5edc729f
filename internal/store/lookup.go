package store

import "github.com/rhanlin/graphql-demo/internal/graph/model"

// FindUserByID returns the user with the given id.
func FindUserByID(users []model.User, id int) (model.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// FindUserByName returns the first user with an exactly matching name.
func FindUserByName(users []model.User, name string) (model.User, bool) {
	for _, u := range users {
		if u.Name == name {
			return u, true
		}
	}
	return model.User{}, false
}

// FindPostByID returns the post with the given id.
func FindPostByID(posts []model.Post, id int) (model.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

// PostsByAuthor returns the posts written by authorID in insertion order.
func PostsByAuthor(posts []model.Post, authorID int) []model.Post {
	result := []model.Post{}
	for _, p := range posts {
		if p.AuthorID == authorID {
			result = append(result, p)
		}
	}
	return result
}

// indexOfPost returns the slice position of the post with the given id, or -1.
func indexOfPost(posts []model.Post, id int) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
