package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/assets"
)

type yearRequest struct {
	Year    int `json:"year" query:"year"`
	OldYear int `json:"old_year"`
	NewYear int `json:"new_year"`
}

func (s *Server) listYears(c *fiber.Ctx) error {
	years, err := s.store.ListYears(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(years)
}

func (s *Server) addYear(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	y, err := s.store.AddYear(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": y.ID, "year": y.Year, "message": fmt.Sprintf("Year %d added successfully", y.Year)})
}

func (s *Server) deleteYear(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteYear(c.UserContext(), req.Year); err != nil {
		return err
	}
	if err := s.files.RemoveYear(req.Year); err != nil {
		log.Warningf("year %d deleted but its images were kept: %s", req.Year, err)
	}
	return message(c, fmt.Sprintf("Year %d and related data deleted successfully", req.Year))
}

func (s *Server) editYear(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.RenameYear(c.UserContext(), req.OldYear, req.NewYear); err != nil {
		return err
	}
	if req.OldYear != req.NewYear {
		if err := s.files.RenameYear(req.OldYear, req.NewYear); err != nil {
			log.Warningf("year %d renamed but its images were not moved: %s", req.OldYear, err)
		}
	}
	return message(c, fmt.Sprintf("Year %d updated to %d", req.OldYear, req.NewYear))
}

// Calendar

type calendarRequest struct {
	Year  int    `json:"year"`
	Date  string `json:"date"`
	Event string `json:"event"`
}

func (s *Server) listCalendar(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	events, err := s.store.ListCalendar(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (s *Server) addCalendarTask(c *fiber.Ctx) error {
	var req calendarRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.AddCalendarEvent(c.UserContext(), req.Year, d, req.Event); err != nil {
		return err
	}
	return message(c, "Task added successfully")
}

func (s *Server) deleteCalendarTask(c *fiber.Ctx) error {
	var req calendarRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCalendarEvent(c.UserContext(), req.Year, d, req.Event); err != nil {
		return err
	}
	return message(c, "Task deleted successfully.")
}

// Yearly plans

type planRequest struct {
	Year      int    `json:"year"`
	Task      string `json:"task"`
	OldTask   string `json:"old_task"`
	Completed bool   `json:"completed"`
}

func (s *Server) addYearlyPlan(c *fiber.Ctx) error {
	var req planRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.AddYearlyPlan(c.UserContext(), req.Year, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, "Task added successfully")
}

func (s *Server) listYearlyPlans(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tasks, err := s.store.ListYearlyPlans(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (s *Server) setYearlyPlanStatus(c *fiber.Ctx) error {
	var req planRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetYearlyPlanStatus(c.UserContext(), req.Year, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, "Task status updated successfully.")
}

func (s *Server) deleteYearlyPlan(c *fiber.Ctx) error {
	var req planRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteYearlyPlan(c.UserContext(), req.Year, req.Task); err != nil {
		return err
	}
	return message(c, "Task deleted successfully")
}

func (s *Server) editYearlyPlan(c *fiber.Ctx) error {
	var req planRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.EditYearlyPlan(c.UserContext(), req.Year, req.OldTask, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, "Task updated successfully.")
}

// Best in months

type bestRequest struct {
	Year      int    `json:"year" query:"year"`
	Month     string `json:"month"`
	ImagePath string `json:"image_path"`
	FileName  string `json:"file_name"`
}

func yearParam(c *fiber.Ctx) (int, error) {
	year, err := c.ParamsInt("year")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year must be a number")
	}
	return year, nil
}

func (s *Server) uploadBestImage(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return err
	}
	rel, err := s.upload(c, assets.YearDir(year), true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Image uploaded successfully", "image_path": publicPath(rel)})
}

func (s *Server) deleteBestImage(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return err
	}
	var req bestRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.files.Remove(assets.YearDir(year), req.FileName); err != nil {
		return err
	}
	return message(c, fmt.Sprintf("image '%s' deleted successfully", req.FileName))
}

func (s *Server) setBestInMonth(c *fiber.Ctx) error {
	var req bestRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetBestInMonth(c.UserContext(), req.Year, req.Month, req.ImagePath); err != nil {
		return err
	}
	return message(c, "Data added successfully")
}

func (s *Server) listBestInMonths(c *fiber.Ctx) error {
	var req bestRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := s.store.ListBestInMonths(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (s *Server) deleteBestInMonth(c *fiber.Ctx) error {
	var req bestRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteBestInMonth(c.UserContext(), req.Year, req.Month); err != nil {
		return err
	}
	return message(c, fmt.Sprintf("Entry for %s %d deleted successfully", req.Month, req.Year))
}

// Year overview

type monthIconRequest struct {
	Year      int    `json:"year"`
	MonthName string `json:"month_name"`
	IconPath  string `json:"icon_path"`
}

func (s *Server) monthStates(c *fiber.Ctx) error {
	var req yearRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	states, err := s.store.MonthStates(c.UserContext(), req.Year)
	if err != nil {
		return err
	}
	return c.JSON(states)
}

func (s *Server) setMonthIcon(c *fiber.Ctx) error {
	var req monthIconRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetMonthIcon(c.UserContext(), req.Year, req.MonthName, req.IconPath); err != nil {
		return err
	}
	return message(c, "Icon updated successfully")
}
