package client

import (
	"context"
	"io"
	"net/http"

	"github.com/ridoystarlord/lifeplan/store"
)

// Checklist is the goals or courses list.
type Checklist struct {
	c    *Client
	noun string
}

func (c *Client) Goals() *Checklist   { return &Checklist{c: c, noun: "goal"} }
func (c *Client) Courses() *Checklist { return &Checklist{c: c, noun: "course"} }

func (l *Checklist) List(ctx context.Context) ([]store.ChecklistItem, error) {
	var items []store.ChecklistItem
	err := l.c.do(ctx, http.MethodGet, "/get_"+l.noun+"s", nil, nil, &items)
	return items, err
}

func (l *Checklist) Add(ctx context.Context, title string) error {
	return l.c.do(ctx, http.MethodPost, "/add_new_"+l.noun, nil, M{"title": title}, nil)
}

func (l *Checklist) SetCompleted(ctx context.Context, title string, completed bool) error {
	return l.c.do(ctx, http.MethodPost, "/update_"+l.noun+"_status", nil, M{"title": title, "completed": completed}, nil)
}

func (l *Checklist) Rename(ctx context.Context, title, newTitle string) error {
	return l.c.do(ctx, http.MethodPost, "/update_"+l.noun+"_title", nil, M{"title": title, "new_title": newTitle}, nil)
}

func (l *Checklist) Delete(ctx context.Context, title string) error {
	return l.c.do(ctx, http.MethodPost, "/delete_"+l.noun, nil, M{"title": title}, nil)
}

// UploadWishImage stores an image and returns the path to reference it by.
func (c *Client) UploadWishImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		ImagePath string `json:"image_path"`
	}
	err := c.upload(ctx, "/upload_image", filename, r, &out)
	return out.ImagePath, err
}

func (c *Client) AddWish(ctx context.Context, item store.WishlistItem) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/add_wishlist_item", nil, item, &out)
	return out.ID, err
}

func (c *Client) ListWishes(ctx context.Context) ([]store.WishlistItem, error) {
	var items []store.WishlistItem
	err := c.do(ctx, http.MethodGet, "/get_wishlist_items", nil, nil, &items)
	return items, err
}

// RemoveWish deletes an item and its image.
func (c *Client) RemoveWish(ctx context.Context, title string) error {
	return c.do(ctx, http.MethodPost, "/remove_wishlist_item", nil, M{"title": title}, nil)
}

func (c *Client) UpdateWish(ctx context.Context, oldTitle, oldImagePath string, item store.WishlistItem) error {
	body := M{
		"old_title":      oldTitle,
		"old_image_path": oldImagePath,
		"new_title":      item.Title,
		"new_image_path": item.ImagePath,
	}
	if item.Price != nil {
		body["price"] = item.Price
	}
	return c.do(ctx, http.MethodPost, "/update_wishlist_item", nil, body, nil)
}

func (c *Client) ListBooks(ctx context.Context) ([]store.Book, error) {
	var books []store.Book
	err := c.do(ctx, http.MethodGet, "/get_books", nil, nil, &books)
	return books, err
}

// UploadBookImage stores a cover and returns its path.
func (c *Client) UploadBookImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		FilePath string `json:"file_path"`
	}
	err := c.upload(ctx, "/upload_book_image", filename, r, &out)
	return out.FilePath, err
}

func (c *Client) AddBook(ctx context.Context, b store.Book) (int, error) {
	var out struct {
		BookID int `json:"book_id"`
	}
	err := c.do(ctx, http.MethodPost, "/add_book", nil, b, &out)
	return out.BookID, err
}

func (c *Client) UpdateBook(ctx context.Context, oldTitle string, b store.Book) error {
	body := struct {
		store.Book
		OldTitle string `json:"old_title"`
	}{b, oldTitle}
	return c.do(ctx, http.MethodPut, "/update_books_info", nil, body, nil)
}

func (c *Client) DeleteBook(ctx context.Context, title string) error {
	return c.do(ctx, http.MethodDelete, "/delete_book", nil, M{"title": title}, nil)
}

func (c *Client) DeleteBookImage(ctx context.Context, coverPath string) error {
	return c.do(ctx, http.MethodDelete, "/delete_book_image", nil, M{"cover_path": coverPath}, nil)
}

func (c *Client) Banners(ctx context.Context) ([]string, error) {
	var out struct {
		Banners []string `json:"banners"`
	}
	err := c.do(ctx, http.MethodGet, "/banners", nil, nil, &out)
	return out.Banners, err
}

func (c *Client) Icons(ctx context.Context) ([]string, error) {
	var out struct {
		Icons []string `json:"icons"`
	}
	err := c.do(ctx, http.MethodGet, "/icons", nil, nil, &out)
	return out.Icons, err
}
