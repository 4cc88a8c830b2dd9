package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/media"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/memory"
)

type fakeStorage struct {
	uploaded []struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}
	err error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(reader)
	f.uploaded = append(f.uploaded, struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}{bucket: bucket, objectName: objectName, contentType: contentType, size: int64(len(data))})
	return "https://storage/" + bucket + "/" + objectName, nil
}

func principalOf(u *domain.User) domain.Principal {
	return u.Principal()
}

func TestBlogCreateValidation(t *testing.T) {
	store := memory.NewStore()
	_, editor, _ := seedUsers(t, store)
	svc := NewBlogService(store.Blogs(), nil, nil, "")
	ctx := context.Background()

	blog, err := svc.Create(ctx, principalOf(editor), BlogInput{Title: " Hello ", Content: "Body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blog.Title != "Hello" || blog.ContentType != domain.BlogContentPlain || blog.AuthorID != editor.ID {
		t.Fatalf("unexpected blog %+v", blog)
	}

	if _, err := svc.Create(ctx, principalOf(editor), BlogInput{Title: "", Content: "Body"}); !errors.Is(err, ErrBlogValidation) {
		t.Fatalf("expected ErrBlogValidation, got %v", err)
	}
	if _, err := svc.Create(ctx, principalOf(editor), BlogInput{Title: strings.Repeat("t", 256), Content: "Body"}); !errors.Is(err, ErrBlogValidation) {
		t.Fatalf("expected ErrBlogValidation for long title, got %v", err)
	}
	if _, err := svc.Create(ctx, principalOf(editor), BlogInput{Title: "T", Content: "Body", ContentType: "pdf"}); !errors.Is(err, ErrBlogContentType) {
		t.Fatalf("expected ErrBlogContentType, got %v", err)
	}
}

func TestBlogOwnership(t *testing.T) {
	store := memory.NewStore()
	admin, editor, _ := seedUsers(t, store)
	other, err := store.Users().Create(context.Background(), "Other", "other@x.com", "h", domain.RoleEditor)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewBlogService(store.Blogs(), nil, nil, "")
	ctx := context.Background()

	blog, err := svc.Create(ctx, principalOf(editor), BlogInput{Title: "Mine", Content: "Body", ContentType: "markdown"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	input := BlogInput{Title: "Edited", Content: "New body", ContentType: "html"}

	if _, err := svc.Update(ctx, principalOf(other), blog.ID, input); !errors.Is(err, ErrBlogForbidden) {
		t.Fatalf("expected ErrBlogForbidden for another editor, got %v", err)
	}
	if err := svc.Delete(ctx, principalOf(other), blog.ID); !errors.Is(err, ErrBlogForbidden) {
		t.Fatalf("expected ErrBlogForbidden on delete, got %v", err)
	}

	updated, err := svc.Update(ctx, principalOf(editor), blog.ID, input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Edited" || updated.ContentType != domain.BlogContentHTML {
		t.Fatalf("unexpected blog %+v", updated)
	}

	if _, err := svc.Update(ctx, principalOf(admin), blog.ID, BlogInput{Title: "By admin", Content: "x"}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if err := svc.Delete(ctx, principalOf(admin), blog.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(ctx, principalOf(admin), blog.ID); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogViewerCannotManage(t *testing.T) {
	store := memory.NewStore()
	_, editor, viewer := seedUsers(t, store)
	svc := NewBlogService(store.Blogs(), nil, nil, "")
	ctx := context.Background()

	blog, err := store.Blogs().Create(ctx, viewer.ID, "Legacy", "Body", domain.BlogContentPlain)
	if err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	if err := svc.Delete(ctx, principalOf(viewer), blog.ID); !errors.Is(err, ErrBlogForbidden) {
		t.Fatalf("expected viewer to be forbidden even as author, got %v", err)
	}
	if err := svc.Delete(ctx, principalOf(editor), blog.ID); !errors.Is(err, ErrBlogForbidden) {
		t.Fatalf("expected non-owner editor to be forbidden, got %v", err)
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestBlogUploadMedia(t *testing.T) {
	store := memory.NewStore()
	_, editor, _ := seedUsers(t, store)
	ctx := context.Background()

	t.Run("stores validated image", func(t *testing.T) {
		storage := &fakeStorage{}
		svc := NewBlogService(store.Blogs(), storage, media.NewInspector(1<<20, 100), "blog-media")
		data := testPNG(t)

		result, err := svc.UploadMedia(ctx, principalOf(editor), media.Upload{Reader: bytes.NewReader(data), FileName: "a.png", ContentType: "image/png", Size: int64(len(data))})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(storage.uploaded) != 1 {
			t.Fatalf("expected one upload, got %d", len(storage.uploaded))
		}
		up := storage.uploaded[0]
		if up.bucket != "blog-media" || up.contentType != "image/png" || up.size != int64(len(data)) {
			t.Fatalf("unexpected upload %+v", up)
		}
		if !strings.HasPrefix(up.objectName, "blogs/"+editor.ID.String()+"/") || !strings.HasSuffix(up.objectName, ".png") {
			t.Fatalf("unexpected object name %q", up.objectName)
		}
		if result.Width != 3 || result.Height != 2 || !strings.HasSuffix(result.URL, up.objectName) {
			t.Fatalf("unexpected result %+v", result)
		}
	})

	t.Run("rejects non images", func(t *testing.T) {
		storage := &fakeStorage{}
		svc := NewBlogService(store.Blogs(), storage, nil, "blog-media")
		_, err := svc.UploadMedia(ctx, principalOf(editor), media.Upload{Reader: strings.NewReader("GIF89a-but-not-really"), FileName: "x.gif"})
		if !errors.Is(err, ErrMediaInvalid) {
			t.Fatalf("expected ErrMediaInvalid, got %v", err)
		}
		if len(storage.uploaded) != 0 {
			t.Fatalf("expected nothing uploaded")
		}
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc := NewBlogService(store.Blogs(), nil, nil, "blog-media")
		_, err := svc.UploadMedia(ctx, principalOf(editor), media.Upload{Reader: bytes.NewReader(testPNG(t))})
		if !errors.Is(err, ErrMediaUnavailable) {
			t.Fatalf("expected ErrMediaUnavailable, got %v", err)
		}
	})
}
