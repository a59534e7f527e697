package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/assets"
)

func (s *Server) routes() {
	app := s.app

	app.Get("/check_server_connection", func(c *fiber.Ctx) error {
		return message(c, "Server is running")
	})
	app.Static("/assets", s.files.Root())

	// Lists for life
	s.checklistRoutes(app, "goal", s.store.Goals)
	s.checklistRoutes(app, "course", s.store.Courses)

	app.Post("/upload_image", s.uploadWishImage)
	app.Get("/get_image/:image_filename", s.wishImage)
	app.Post("/add_wishlist_item", s.addWish)
	app.Get("/get_wishlist_items", s.listWishes)
	app.Post("/remove_wishlist_item", s.removeWish)
	app.Post("/update_wishlist_item", s.updateWish)

	app.Get("/get_books", s.listBooks)
	app.Post("/upload_book_image", s.uploadBookImage)
	app.Post("/add_book", s.addBook)
	app.Delete("/delete_book", s.deleteBook)
	app.Delete("/delete_book_image", s.deleteBookImage)
	app.Put("/update_books_info", s.updateBook)
	app.Get("/banners", s.names("banners", assets.BannersDir))
	app.Get("/icons", s.names("icons", assets.IconsDir))

	// Years
	app.Get("/get_years", s.listYears)
	app.Post("/add_year", s.addYear)
	app.Delete("/delete_year", s.deleteYear)
	app.Put("/edit_year", s.editYear)

	app.Get("/get_calendar_tasks", s.listCalendar)
	app.Post("/add_calendar_task", s.addCalendarTask)
	app.Delete("/delete_calendar_task", s.deleteCalendarTask)

	app.Post("/add_task_yearly_plans_inner", s.addYearlyPlan)
	app.Get("/get_tasks_yearly_plans_inner", s.listYearlyPlans)
	app.Put("/yearly_plans_inner_update_task_status", s.setYearlyPlanStatus)
	app.Delete("/yearly_plans_inner_delete_task", s.deleteYearlyPlan)
	app.Put("/yearly_plans_inner_edit_task", s.editYearlyPlan)

	app.Post("/upload_best_in_month_image/:year", s.uploadBestImage)
	app.Post("/add_best_in_months_data", s.setBestInMonth)
	app.Get("/get_best_in_months_data", s.listBestInMonths)
	app.Post("/delete_best_in_month_image/:year", s.deleteBestImage)
	app.Post("/delete_best_in_months_task", s.deleteBestInMonth)

	app.Get("/get_months_states", s.monthStates)
	app.Post("/update_months_icon_status", s.setMonthIcon)

	app.Post("/task_add_gratitude_diary", s.addGratitude)
	app.Get("/get_gratitude_diary_entries", s.listGratitude)
	app.Post("/gratitude_diary_edit", s.editGratitude)
	app.Post("/gratitude_diary_delete", s.deleteGratitude)

	app.Get("/get_habit_tracker", s.habitTracker)
	app.Post("/update_start_date", s.setHabitWeekStart)
	app.Post("/update_habit_tracker_task_state", s.setHabitState)
	app.Post("/refresh_habit_tracker_states", s.resetHabitStates)
	app.Post("/edit_habit_tracker", s.editHabitDay)

	app.Get("/get_review", s.review)
	app.Post("/update_review", s.updateReview)

	// Month pages
	app.Get("/get_months_ui_data", s.monthDetails)
	app.Post("/update_reading_link", s.setReadingLink)

	app.Post("/add_month_goal", s.addMonthGoal)
	app.Get("/get_month_goals", s.listMonthGoals)
	app.Post("/toggle_month_goal_state", s.toggleMonthGoal)
	app.Post("/delete_month_goal", s.deleteMonthGoal)
	app.Post("/update_month_goal", s.renameMonthGoal)

	app.Post("/add_month_diary_task", s.addDiaryTask)
	app.Get("/get_month_diary_tasks", s.listDiary)
	app.Post("/get_month_diary_tasks", s.listDiary)
	app.Post("/delete_month_diary_task", s.deleteDiaryTask)
	app.Post("/toggle_month_diary_task", s.toggleDiaryTask)
	app.Post("/update_month_diary_task", s.renameDiaryTask)

	app.Get("/get_popup_colour", s.listDayColours)
	app.Get("/get_popup_data", s.listDayPopups)
	app.Post("/add_month_popup_colour", s.setDayColour)
	app.Post("/add_month_popup_data", s.setDayPopup)
	app.Delete("/delete_month_popup_colour", s.deleteDayColour)
	app.Delete("/delete_month_popup_data", s.deleteDayPopup)

	// Work
	app.Post("/add_work_place", s.addWorkPlace)
	app.Get("/get_work_place", s.listWorkPlaces)
	app.Post("/delete_work_place", s.deleteWorkPlace)
	app.Post("/update_work_place_title", s.renameWorkPlace)
	app.Post("/add_work_note", s.addWorkNote)
	app.Get("/get_work_place_notes", s.listWorkNotes)
	app.Post("/delete_work_place_note", s.deleteWorkNote)
	app.Post("/edit_work_place_note", s.editWorkNote)

	app.Use(notFound)
}
