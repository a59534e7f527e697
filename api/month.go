package api

import (
	"github.com/gofiber/fiber/v2"
)

type monthRequest struct {
	Year         int    `json:"year" query:"year"`
	Month        string `json:"month" query:"month"`
	Date         string `json:"date"`
	Task         string `json:"task"`
	OldTask      string `json:"old_task"`
	NewTask      string `json:"new_task"`
	Completed    bool   `json:"completed"`
	Done         bool   `json:"done"`
	NewLink      string `json:"new_link"`
	ColourCode   string `json:"colour_code"`
	PopupMessage string `json:"popup_message"`
}

func (s *Server) monthDetails(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	details, err := s.store.MonthDetails(c.UserContext(), req.Year, req.Month)
	if err != nil {
		return err
	}
	return c.JSON(details)
}

func (s *Server) setReadingLink(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetReadingLink(c.UserContext(), req.Year, req.Month, req.NewLink); err != nil {
		return err
	}
	return message(c, "Reading link updated successfully")
}

// Month goals

func (s *Server) addMonthGoal(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.AddMonthGoal(c.UserContext(), req.Year, req.Month, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, "Goal added successfully")
}

func (s *Server) listMonthGoals(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	goals, err := s.store.ListMonthGoals(c.UserContext(), req.Year, req.Month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"goals": goals})
}

func (s *Server) toggleMonthGoal(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.SetMonthGoalState(c.UserContext(), req.Year, req.Month, req.Task, req.Done); err != nil {
		return err
	}
	return message(c, "Goal state updated successfully")
}

func (s *Server) deleteMonthGoal(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.DeleteMonthGoal(c.UserContext(), req.Year, req.Month, req.Task); err != nil {
		return err
	}
	return message(c, "Goal deleted successfully")
}

func (s *Server) renameMonthGoal(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.store.RenameMonthGoal(c.UserContext(), req.Year, req.Month, req.OldTask, req.NewTask); err != nil {
		return err
	}
	return message(c, "Goal updated successfully")
}

// Month diary

func (s *Server) addDiaryTask(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.AddDiaryTask(c.UserContext(), req.Year, req.Month, d, req.Task, req.Completed); err != nil {
		return err
	}
	return message(c, "Diary task added successfully")
}

func (s *Server) listDiary(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tasks, err := s.store.ListDiary(c.UserContext(), req.Year, req.Month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (s *Server) deleteDiaryTask(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDiaryTask(c.UserContext(), req.Year, req.Month, d, req.Task); err != nil {
		return err
	}
	return message(c, "Diary task deleted successfully")
}

func (s *Server) toggleDiaryTask(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.SetDiaryTaskState(c.UserContext(), req.Year, req.Month, d, req.Task, req.Done); err != nil {
		return err
	}
	return message(c, "Diary task status updated successfully")
}

func (s *Server) renameDiaryTask(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.RenameDiaryTask(c.UserContext(), req.Year, req.Month, d, req.OldTask, req.NewTask); err != nil {
		return err
	}
	return message(c, "Diary task updated successfully")
}

// Day colours and popups

func success(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"status": "success", "message": msg})
}

func (s *Server) listDayColours(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	colours, err := s.store.ListDayColours(c.UserContext(), req.Year, req.Month)
	if err != nil {
		return err
	}
	return c.JSON(colours)
}

func (s *Server) listDayPopups(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	popups, err := s.store.ListDayPopups(c.UserContext(), req.Year, req.Month)
	if err != nil {
		return err
	}
	return c.JSON(popups)
}

func (s *Server) setDayColour(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.SetDayColour(c.UserContext(), req.Year, req.Month, d, req.ColourCode); err != nil {
		return err
	}
	return success(c, "Popup color added successfully")
}

func (s *Server) setDayPopup(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.SetDayPopup(c.UserContext(), req.Year, req.Month, d, req.PopupMessage); err != nil {
		return err
	}
	return success(c, "Popup data added successfully")
}

func (s *Server) deleteDayColour(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDayColour(c.UserContext(), req.Year, req.Month, d); err != nil {
		return err
	}
	return success(c, "Popup color deleted successfully")
}

func (s *Server) deleteDayPopup(c *fiber.Ctx) error {
	var req monthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := date(req.Date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDayPopup(c.UserContext(), req.Year, req.Month, d); err != nil {
		return err
	}
	return success(c, "Popup data deleted successfully")
}
