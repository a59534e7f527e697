package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/store"
)

// Gratitude diary

type gratitudeRequest struct {
	Year  int    `json:"year"`
	Date  string `json:"date"`
	Entry string `json:"entry"`
}

func (s *Server) addGratitude(c *fiber.Ctx) error {
	var req gratitudeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.AddGratitude(c.UserContext(), req.Year, d, req.Entry); err != nil {
		return err
	}
	return message(c, "Gratitude entry added successfully")
}

func (s *Server) listGratitude(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entries, err := s.store.ListGratitude(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *Server) editGratitude(c *fiber.Ctx) error {
	var req gratitudeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.UpsertGratitude(c.UserContext(), req.Year, d, req.Entry); err != nil {
		return err
	}
	return message(c, "Gratitude diary entry updated successfully")
}

func (s *Server) deleteGratitude(c *fiber.Ctx) error {
	var req gratitudeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGratitude(c.UserContext(), req.Year, d); err != nil {
		return err
	}
	return message(c, "Entry deleted successfully")
}

// Habit tracker

type habitRequest struct {
	Year      int      `json:"year"`
	Date      string   `json:"date"`
	StartDate string   `json:"start_date"`
	Day       string   `json:"day"`
	Task      string   `json:"task"`
	Tasks     []string `json:"tasks"`
	Completed bool     `json:"completed"`
}

func (s *Server) habitTracker(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	weeks, err := s.store.HabitTracker(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(weeks)
}

func (s *Server) setHabitWeekStart(c *fiber.Ctx) error {
	var req habitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.SetHabitWeekStart(c.UserContext(), req.Year, d); err != nil {
		return err
	}
	return message(c, "Week starting date updated successfully")
}

func (s *Server) setHabitState(c *fiber.Ctx) error {
	var req habitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetHabitState(c.UserContext(), req.Year, req.Day, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, fmt.Sprintf("Task '%s' updated successfully", req.Task))
}

func (s *Server) resetHabitStates(c *fiber.Ctx) error {
	var req habitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.ResetHabitStates(c.UserContext(), req.Year); err != nil {
		return err
	}
	return message(c, "All tasks successfully reset")
}

func (s *Server) editHabitDay(c *fiber.Ctx) error {
	var req habitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, err := date(req.StartDate)
	if err != nil {
		return err
	}
	if err := s.store.EditHabitDay(c.UserContext(), req.Year, start, req.Day, req.Tasks); err != nil {
		return err
	}
	return message(c, "Habit tracker updated successfully")
}

// Review

type reviewRequest struct {
	Year    int                  `json:"year"`
	Reviews []store.ReviewAnswer `json:"reviews"`
}

func (s *Server) review(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	answers, err := s.store.Review(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(answers)
}

func (s *Server) updateReview(c *fiber.Ctx) error {
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.UpdateReview(c.UserContext(), req.Year, req.Reviews); err != nil {
		return err
	}
	return message(c, "Review data updated successfully")
}
