package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"Yatube/internal/config"
	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func mustUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name}
	require.NoError(t, (&database.UserRepository{DB: db}).Create(context.Background(), u))
	return u
}

func mustGroup(t *testing.T, db *gorm.DB, title, slug string) *model.Group {
	t.Helper()
	g, err := NewGroupService(db, nil).CreateGroup(context.Background(), GroupForm{Title: title, Slug: slug})
	require.NoError(t, err)
	return g
}

func mustPosts(t *testing.T, svc *PostService, actor *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	out := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		form := PostForm{Text: fmt.Sprintf("%s post %d", actor.Username, i)}
		if group != nil {
			form.GroupID = &group.ID
		}
		p, err := svc.CreatePost(context.Background(), actor, form)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

// memCache is an in-process IndexCache.
type memCache struct {
	mu      sync.Mutex
	version int
	pages   map[string]pkg.Page[model.Post]
	hits    int
}

func newMemCache() *memCache {
	return &memCache{pages: map[string]pkg.Page[model.Post]{}}
}

func (c *memCache) key(number, size int) string {
	return fmt.Sprintf("%d:%d:%d", c.version, size, number)
}

func (c *memCache) Get(_ context.Context, number, size int) (pkg.Page[model.Post], bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[c.key(number, size)]
	if ok {
		c.hits++
	}
	return p, ok, nil
}

func (c *memCache) Set(_ context.Context, number, size int, page pkg.Page[model.Post]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[c.key(number, size)] = page
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return nil
}
