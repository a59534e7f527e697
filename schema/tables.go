package schema

// Table names.
const (
	Years         = "years"
	Calendar      = "calendar"
	YearlyPlans   = "yearly_plans"
	HabitTracker  = "habit_tracker"
	Gratitude     = "gratitude_diary"
	Review        = "review"
	BestInMonths  = "best_in_months"
	MonthlyPlans  = "monthly_plans"
	MonthlyDiary  = "monthly_diary"
	TaskColours   = "task_colours"
	TaskPopups    = "task_popups"
	Months        = "months"
	Reading       = "reading"
	Authors       = "authors"
	ReadingAuthor = "reading_authors"
	Wishlist      = "wishlist"
	Goals         = "goals"
	Courses       = "courses"
	Work          = "work"
	WorkPlace     = "work_place"
)

func strp(s string) *string { return &s }

func id() Column {
	return Column{Name: "id", Type: "serial", Primary: true}
}

func ref(table string) *ForeignKey {
	return &ForeignKey{ReferencesTable: table, ReferencesColumn: "id", OnDelete: "CASCADE"}
}

func yearID() Column {
	return Column{Name: "year_id", Type: "integer", ForeignKey: ref(Years)}
}

func text(name string, notNull bool) Column {
	return Column{Name: name, Type: "text", NotNull: notNull}
}

func varchar(name string, n string, notNull bool) Column {
	return Column{Name: name, Type: "varchar(" + n + ")", NotNull: notNull}
}

func flag(name string, notNull bool) Column {
	return Column{Name: name, Type: "boolean", NotNull: notNull, Default: strp("false")}
}

func date(name string, notNull bool) Column {
	return Column{Name: name, Type: "date", NotNull: notNull}
}

func checklist(table string) Model {
	return Model{
		TableName: table,
		Columns:   []Column{id(), varchar("title", "255", true), flag("completed", true)},
	}
}

// Tables returns the declared planner schema in dependency order.
// It describes the state after every embedded migration has been applied.
func Tables() []Model {
	return []Model{
		{
			TableName: Years,
			Columns:   []Column{id(), {Name: "year", Type: "integer", Unique: true, NotNull: true}},
		},
		{
			TableName: Calendar,
			Columns:   []Column{id(), yearID(), date("date", true), varchar("event", "255", false)},
		},
		{
			TableName: YearlyPlans,
			Columns:   []Column{id(), yearID(), varchar("task", "255", true), flag("completed", true)},
		},
		{
			TableName: HabitTracker,
			Columns: []Column{
				id(), yearID(), date("week_starting", false), varchar("day_of_week", "9", false),
				varchar("task", "255", false), flag("completed", false),
			},
		},
		{
			TableName: Gratitude,
			Columns:   []Column{id(), yearID(), date("entry_date", false), text("content", false)},
		},
		{
			TableName: Review,
			Columns:   []Column{id(), yearID(), varchar("question", "255", false), text("answer", false)},
		},
		{
			TableName: BestInMonths,
			Columns:   []Column{id(), yearID(), varchar("month", "20", false), text("image_path", false)},
			Indexes: []Index{
				{Name: "ux_best_in_months_year_month", Table: BestInMonths, Columns: []string{"year_id", "month"}, Unique: true},
			},
		},
		{
			TableName: MonthlyPlans,
			Columns: []Column{
				id(), yearID(), varchar("month", "20", false), text("task", false), flag("completed", false),
			},
		},
		{
			TableName: MonthlyDiary,
			Columns: []Column{
				id(), yearID(), varchar("month", "20", false), date("date", true),
				text("task", false), flag("completed", false),
			},
		},
		{
			TableName: TaskColours,
			Columns: []Column{
				id(), yearID(), varchar("month", "20", false), date("date", true), varchar("colour_code", "7", false),
			},
		},
		{
			TableName: TaskPopups,
			Columns: []Column{
				id(), yearID(), varchar("month", "20", false), date("date", true), text("popup_message", false),
			},
		},
		{
			TableName: Months,
			Columns: []Column{
				id(), yearID(), varchar("month_name", "20", true), text("icon_path", false),
				text("banner", false), text("reading_link", false), text("month_icon_path", false),
			},
			Indexes: []Index{
				{Name: "ux_months_year_month_name", Table: Months, Columns: []string{"year_id", "month_name"}, Unique: true},
			},
		},
		{
			TableName: Reading,
			Columns: []Column{
				id(), varchar("title", "255", true), varchar("language", "50", false), varchar("status", "50", false),
				text("link", false), varchar("series", "255", false), text("banner_path", false),
				text("icon_path", false), text("cover_path", false),
			},
		},
		{
			TableName: Authors,
			Columns:   []Column{id(), varchar("name", "255", true)},
			Indexes: []Index{
				{Name: "ux_authors_name", Table: Authors, Columns: []string{"name"}, Unique: true},
			},
		},
		{
			TableName: ReadingAuthor,
			Columns: []Column{
				{Name: "reading_id", Type: "integer", NotNull: true, ForeignKey: ref(Reading)},
				{Name: "author_id", Type: "integer", NotNull: true, ForeignKey: ref(Authors)},
			},
			PrimaryKey: []string{"reading_id", "author_id"},
		},
		{
			TableName: Wishlist,
			Columns: []Column{
				id(), text("title", true), text("image_path", true),
				{Name: "price", Type: "numeric(12,2)"},
			},
		},
		checklist(Goals),
		checklist(Courses),
		{
			TableName: Work,
			Columns:   []Column{id(), varchar("work_name", "255", true)},
			Indexes: []Index{
				{Name: "ux_work_work_name", Table: Work, Columns: []string{"work_name"}, Unique: true},
			},
		},
		{
			TableName: WorkPlace,
			Columns: []Column{
				id(),
				{Name: "work_id", Type: "integer", ForeignKey: ref(Work)},
				text("note_text", false),
				{Name: "created_at", Type: "timestamp", NotNull: true, Default: strp("CURRENT_TIMESTAMP")},
			},
		},
	}
}

// YearScoped lists the tables whose rows belong to a year and the date column
// (if any) that must move when the year is renamed.
func YearScoped() map[string]string {
	return map[string]string{
		Calendar:     "date",
		YearlyPlans:  "",
		HabitTracker: "week_starting",
		Gratitude:    "entry_date",
		Review:       "",
		BestInMonths: "",
		MonthlyPlans: "",
		MonthlyDiary: "date",
		TaskColours:  "date",
		TaskPopups:   "date",
		Months:       "",
	}
}
