package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/shopspring/decimal"
)

type titleRequest struct {
	Title     string `json:"title"`
	NewTitle  string `json:"new_title"`
	Completed bool   `json:"completed"`
}

// checklistRoutes registers the five endpoints shared by goals and courses.
func (s *Server) checklistRoutes(r fiber.Router, noun string, list func() *store.Checklist) {
	label := strings.ToUpper(noun[:1]) + noun[1:]

	r.Get("/get_"+noun+"s", func(c *fiber.Ctx) error {
		items, err := list().List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	})
	r.Post("/add_new_"+noun, func(c *fiber.Ctx) error {
		var req titleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if err := list().Add(c.UserContext(), req.Title); err != nil {
			return err
		}
		return message(c, label+" added successfully")
	})
	r.Post("/update_"+noun+"_status", func(c *fiber.Ctx) error {
		var req titleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if err := list().SetCompleted(c.UserContext(), req.Title, req.Completed); err != nil {
			return err
		}
		return message(c, "Task updated successfully")
	})
	r.Post("/delete_"+noun, func(c *fiber.Ctx) error {
		var req titleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if err := list().Delete(c.UserContext(), req.Title); err != nil {
			return err
		}
		return message(c, "Task deleted successfully")
	})
	r.Post("/update_"+noun+"_title", func(c *fiber.Ctx) error {
		var req titleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if err := list().Rename(c.UserContext(), req.Title, req.NewTitle); err != nil {
			return err
		}
		return message(c, "Task updated successfully")
	})
}

// upload stores the multipart "file" field in dir.
func (s *Server) upload(c *fiber.Ctx, dir string, overwrite bool) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "missing file: "+err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.files.Save(dir, fh.Filename, f, overwrite)
}

// publicPath is the URL an asset is served under.
func publicPath(rel string) string {
	return "/assets/" + rel
}

func (s *Server) names(key, dir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := s.files.Names(dir)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{key: names})
	}
}

// Wishlist

type wishRequest struct {
	Title        string           `json:"title"`
	ImagePath    string           `json:"image_path"`
	Price        *decimal.Decimal `json:"price"`
	OldTitle     string           `json:"old_title"`
	NewTitle     string           `json:"new_title"`
	OldImagePath string           `json:"old_image_path"`
	NewImagePath string           `json:"new_image_path"`
}

func (s *Server) uploadWishImage(c *fiber.Ctx) error {
	rel, err := s.upload(c, assets.WishlistDir, false)
	if err != nil {
		return err
	}
	name, _ := assets.BaseName(rel)
	return c.JSON(fiber.Map{"filename": name, "image_path": publicPath(rel)})
}

func (s *Server) wishImage(c *fiber.Ctx) error {
	full, err := s.files.Open(assets.WishlistDir, c.Params("image_filename"))
	if err != nil {
		return err
	}
	return c.SendFile(full)
}

func (s *Server) addWish(c *fiber.Ctx) error {
	var req wishRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := s.store.AddWish(c.UserContext(), store.WishlistItem{Title: req.Title, ImagePath: req.ImagePath, Price: req.Price})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "message": "Wishlist item added successfully"})
}

func (s *Server) listWishes(c *fiber.Ctx) error {
	items, err := s.store.ListWishes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// removeImage deletes an uploaded file by the base name of its stored path.
// A file that is already gone is not an error.
func (s *Server) removeImage(dir, stored string) error {
	if strings.TrimSpace(stored) == "" {
		return nil
	}
	err := s.files.Remove(dir, stored)
	if err != nil && !errors.Is(err, assets.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Server) removeWish(c *fiber.Ctx) error {
	var req wishRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Title == "" && req.ImagePath == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title or image_path is required")
	}
	ctx := c.UserContext()
	image := req.ImagePath
	if req.Title != "" {
		stored, err := s.store.WishImage(ctx, req.Title)
		if err != nil {
			return err
		}
		image = stored
		if err := s.store.RemoveWish(ctx, req.Title); err != nil {
			return err
		}
	}
	if err := s.removeImage(assets.WishlistDir, image); err != nil {
		return err
	}
	return message(c, "Task and image deleted successfully")
}

func (s *Server) updateWish(c *fiber.Ctx) error {
	var req wishRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err := s.store.UpdateWish(c.UserContext(), req.OldTitle, store.WishlistItem{
		Title: req.NewTitle, ImagePath: req.NewImagePath, Price: req.Price,
	})
	if err != nil {
		return err
	}
	oldName, _ := assets.BaseName(req.OldImagePath)
	newName, _ := assets.BaseName(req.NewImagePath)
	if oldName != newName {
		if err := s.removeImage(assets.WishlistDir, req.OldImagePath); err != nil {
			return err
		}
	}
	return message(c, "Task updated successfully")
}

// Reading list

type bookRequest struct {
	store.Book
	OldTitle string `json:"old_title"`
}

func (s *Server) listBooks(c *fiber.Ctx) error {
	books, err := s.store.ListBooks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(books)
}

func (s *Server) uploadBookImage(c *fiber.Ctx) error {
	rel, err := s.upload(c, assets.CoversDir, false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"file_path": publicPath(rel)})
}

func (s *Server) addBook(c *fiber.Ctx) error {
	var req bookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := s.store.AddBook(c.UserContext(), req.Book)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Book added successfully", "book_id": id})
}

func (s *Server) deleteBook(c *fiber.Ctx) error {
	var req bookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteBook(c.UserContext(), req.Title); err != nil {
		return err
	}
	return message(c, "Book deleted successfully")
}

func (s *Server) deleteBookImage(c *fiber.Ctx) error {
	var req bookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.files.Remove(assets.CoversDir, req.CoverPath); err != nil {
		return err
	}
	return message(c, "Image deleted successfully")
}

func (s *Server) updateBook(c *fiber.Ctx) error {
	var req bookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.UpdateBook(c.UserContext(), req.OldTitle, req.Book); err != nil {
		return err
	}
	return message(c, "Book updated successfully")
}
