package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/graph-gophers/graphql-go"

	"github.com/rhanlin/graphql-demo/internal/graph/model"
	"github.com/rhanlin/graphql-demo/internal/store"
)

var ErrSearchDisabled = errors.New("search is not available")

// Hello is the resolver for the hello field.
func (r *Resolver) Hello() string {
	return "world"
}

// Me is the resolver for the me field. It returns the same user that
// addPost and likePost act as.
func (r *Resolver) Me() *UserResolver {
	u, ok := r.Store.UserByID(r.meID())
	if !ok {
		return nil
	}
	return r.newUser(u)
}

// Users is the resolver for the users field.
func (r *Resolver) Users() []*UserResolver {
	return r.newUsers(r.Store.Users())
}

// User is the resolver for the user field.
func (r *Resolver) User(args struct{ Name string }) *UserResolver {
	u, ok := r.Store.UserByName(args.Name)
	if !ok {
		return nil
	}
	return r.newUser(u)
}

// Post is the resolver for the post field.
func (r *Resolver) Post(args struct{ ID graphql.ID }) (*PostResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	p, ok := r.Store.PostByID(id)
	if !ok {
		return nil, nil
	}
	return r.newPost(p), nil
}

// Posts is the resolver for the posts field.
func (r *Resolver) Posts() []*PostResolver {
	return r.newPosts(r.Store.Posts())
}

// SearchPosts is the resolver for the searchPosts field.
func (r *Resolver) SearchPosts(args struct {
	Query string
	Limit *int32
}) ([]*PostResolver, error) {
	if r.Index == nil {
		return nil, ErrSearchDisabled
	}

	limit := r.SearchLimit
	if args.Limit != nil {
		limit = int(*args.Limit)
	}

	ids, err := r.Index.Search(args.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}

	result := make([]*PostResolver, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.Store.PostByID(id); ok {
			result = append(result, r.newPost(p))
		}
	}
	return result, nil
}

// AddPost is the resolver for the addPost field.
func (r *Resolver) AddPost(args struct{ Input model.AddPostInput }) (*PostResolver, error) {
	p := r.Store.AddPost(r.meID(), args.Input)

	if r.Index != nil {
		if err := r.Index.IndexPost(p); err != nil {
			return nil, fmt.Errorf("indexing post %d: %w", p.ID, err)
		}
	}

	return r.newPost(p), nil
}

// LikePost is the resolver for the likePost field.
func (r *Resolver) LikePost(args struct{ PostID graphql.ID }) (*PostResolver, error) {
	id, err := parseID(args.PostID)
	if err != nil {
		return nil, err
	}

	p, err := r.Store.ToggleLike(id, r.meID())
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, fmt.Errorf("post %d not found", id)
		}
		return nil, err
	}
	return r.newPost(p), nil
}

// UserResolver resolves the fields of a User.
type UserResolver struct {
	root *Resolver
	user model.User
}

// ID is the resolver for the id field.
func (u *UserResolver) ID() graphql.ID {
	return formatID(u.user.ID)
}

// Name is the resolver for the name field.
func (u *UserResolver) Name() string {
	return u.user.Name
}

// Age is the resolver for the age field.
func (u *UserResolver) Age() int32 {
	return int32(u.user.Age)
}

// Friends is the resolver for the friends field. Friends come back in the
// order of the user collection, not of the friend id list.
func (u *UserResolver) Friends() []*UserResolver {
	var friends []model.User
	for _, candidate := range u.root.Store.Users() {
		if u.user.IsFriend(candidate.ID) {
			friends = append(friends, candidate)
		}
	}
	return u.root.newUsers(friends)
}

// Height is the resolver for the height field. The schema default
// fills in the unit when the query omits it.
func (u *UserResolver) Height(args struct{ Unit model.HeightUnit }) (*float64, error) {
	v, err := args.Unit.FromCentimetres(u.user.Height)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Weight is the resolver for the weight field. The schema default
// fills in the unit when the query omits it.
func (u *UserResolver) Weight(args struct{ Unit model.WeightUnit }) (*float64, error) {
	v, err := args.Unit.FromKilograms(u.user.Weight)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Posts is the resolver for the posts field.
func (u *UserResolver) Posts() []*PostResolver {
	return u.root.newPosts(u.root.Store.PostsByAuthor(u.user.ID))
}

// PostResolver resolves the fields of a Post.
type PostResolver struct {
	root *Resolver
	post model.Post
}

// ID is the resolver for the id field.
func (p *PostResolver) ID() graphql.ID {
	return formatID(p.post.ID)
}

// Author is the resolver for the author field.
func (p *PostResolver) Author() *UserResolver {
	u, ok := p.root.Store.UserByID(p.post.AuthorID)
	if !ok {
		return nil
	}
	return p.root.newUser(u)
}

// Title is the resolver for the title field.
func (p *PostResolver) Title() string {
	return p.post.Title
}

// Content is the resolver for the content field.
func (p *PostResolver) Content() *string {
	return p.post.Content
}

// LikeGivers is the resolver for the likeGivers field. Ids that match no
// user resolve to null entries.
func (p *PostResolver) LikeGivers() []*UserResolver {
	result := make([]*UserResolver, len(p.post.LikeGiverIDs))
	for i, id := range p.post.LikeGiverIDs {
		if u, ok := p.root.Store.UserByID(id); ok {
			result[i] = p.root.newUser(u)
		}
	}
	return result
}

func (r *Resolver) newUser(u model.User) *UserResolver {
	return &UserResolver{root: r, user: u}
}

func (r *Resolver) newUsers(users []model.User) []*UserResolver {
	result := make([]*UserResolver, len(users))
	for i, u := range users {
		result[i] = r.newUser(u)
	}
	return result
}

func (r *Resolver) newPost(p model.Post) *PostResolver {
	return &PostResolver{root: r, post: p}
}

func (r *Resolver) newPosts(posts []model.Post) []*PostResolver {
	result := make([]*PostResolver, len(posts))
	for i, p := range posts {
		result[i] = r.newPost(p)
	}
	return result
}

func formatID(id int) graphql.ID {
	return graphql.ID(strconv.Itoa(id))
}

func parseID(id graphql.ID) (int, error) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return n, nil
}
