package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type workRequest struct {
	WorkName    string `json:"work_name" query:"work_name"`
	OldWorkName string `json:"old_work_name"`
	NewWorkName string `json:"new_work_name"`
	NoteText    string `json:"note_text"`
	OldText     string `json:"old_text"`
	NewText     string `json:"new_text"`
}

func (s *Server) addWorkPlace(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := s.store.AddWorkPlace(c.UserContext(), req.WorkName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "work_name": req.WorkName, "message": "Work place added successfully"})
}

func (s *Server) listWorkPlaces(c *fiber.Ctx) error {
	places, err := s.store.ListWorkPlaces(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"buttons": places})
}

func (s *Server) deleteWorkPlace(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteWorkPlace(c.UserContext(), req.WorkName); err != nil {
		return err
	}
	return message(c, fmt.Sprintf("Work place '%s' deleted successfully", req.WorkName))
}

func (s *Server) renameWorkPlace(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.RenameWorkPlace(c.UserContext(), req.OldWorkName, req.NewWorkName); err != nil {
		return err
	}
	return message(c, fmt.Sprintf("Work place '%s' updated successfully", req.OldWorkName))
}

func (s *Server) addWorkNote(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := s.store.AddWorkNote(c.UserContext(), req.WorkName, req.NoteText)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Note added successfully", "note_id": id})
}

func (s *Server) listWorkNotes(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	notes, err := s.store.ListWorkNotes(c.UserContext(), req.WorkName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (s *Server) deleteWorkNote(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteWorkNote(c.UserContext(), req.WorkName, req.NoteText); err != nil {
		return err
	}
	return message(c, "Work note deleted.")
}

func (s *Server) editWorkNote(c *fiber.Ctx) error {
	var req workRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.EditWorkNote(c.UserContext(), req.WorkName, req.OldText, req.NewText); err != nil {
		return err
	}
	return message(c, "Note updated successfully")
}
