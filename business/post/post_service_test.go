package post

import (
	"context"
	"testing"

	"github.com/Sandeep-S-M/FarmConn/domain"
)

type fakePostRepo struct {
	posts []domain.Post
}

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) error {
	post.ID = uint(len(r.posts) + 1)
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) FindAllRecent(ctx context.Context) ([]domain.Post, error) {
	out := make([]domain.Post, len(r.posts))
	for i, p := range r.posts {
		out[len(r.posts)-1-i] = p
	}
	return out, nil
}

func (r *fakePostRepo) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreatePost(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewPostService(repo)

	created, err := svc.CreatePost(context.Background(), 1, "Best soil for roses?", "My damask roses keep wilting.")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("created post should get an ID")
	}
	if created.AuthorID != 1 {
		t.Errorf("author = %d, want 1", created.AuthorID)
	}

	if _, err := svc.CreatePost(context.Background(), 1, "", "no title"); err == nil {
		t.Error("empty title must be rejected")
	}
}

func TestListRecent(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewPostService(repo)

	if _, err := svc.CreatePost(context.Background(), 1, "first", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreatePost(context.Background(), 2, "second", "b"); err != nil {
		t.Fatal(err)
	}

	posts, err := svc.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Title != "second" {
		t.Errorf("newest first, got %q", posts[0].Title)
	}
}
