package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rhanlin/graphql-demo/internal/graph/model"
)

//go:embed seed.yaml
var defaultSeed []byte

var ErrInvalidSeed = errors.New("invalid seed")

// Seed is the document a store is initialised from.
type Seed struct {
	Users []model.User `yaml:"users"`
	Posts []model.Post `yaml:"posts"`
}

// LoadSeed decodes a YAML seed document and checks that ids are unique.
func LoadSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// validate rejects duplicate ids. Dangling friend or like-giver references
// are allowed and resolve to null.
func (s *Seed) validate() error {
	users := make(map[int]bool, len(s.Users))
	for _, u := range s.Users {
		if users[u.ID] {
			return fmt.Errorf("%w: duplicate user id %d", ErrInvalidSeed, u.ID)
		}
		users[u.ID] = true
	}

	posts := make(map[int]bool, len(s.Posts))
	for _, p := range s.Posts {
		if posts[p.ID] {
			return fmt.Errorf("%w: duplicate post id %d", ErrInvalidSeed, p.ID)
		}
		if p.Title == "" {
			return fmt.Errorf("%w: post %d has no title", ErrInvalidSeed, p.ID)
		}
		posts[p.ID] = true
	}
	return nil
}

// Default returns a store holding the built-in sample data.
func Default() *Memory {
	seed, err := LoadSeed(bytes.NewReader(defaultSeed))
	if err != nil {
		// The embedded seed is covered by tests.
		panic(fmt.Sprintf("store: embedded seed: %v", err))
	}
	return New(seed.Users, seed.Posts)
}

// Open returns a store initialised from the seed file at path. An empty path
// selects the built-in sample data.
func Open(path string) (*Memory, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seed, err := LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return New(seed.Users, seed.Posts), nil
}
