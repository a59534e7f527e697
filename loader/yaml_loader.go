package loader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ridoystarlord/lifeplan/schema"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var builtin []byte

// HabitDay is the default habit list of one weekday.
type HabitDay struct {
	Day   string   `yaml:"day"`
	Tasks []string `yaml:"tasks"`
}

type monthTemplate struct {
	Banner      string `yaml:"banner"`
	MonthIcon   string `yaml:"month_icon"`
	ReadingLink string `yaml:"reading_link"`
}

// Defaults holds the rows seeded for a new year.
type Defaults struct {
	Habits          []HabitDay    `yaml:"habits"`
	ReviewQuestions []string      `yaml:"review_questions"`
	MonthStates     []string      `yaml:"month_states"`
	Month           monthTemplate `yaml:"month"`
}

// MonthPreset is the seeded months row of one month.
type MonthPreset struct {
	Name          string
	IconPath      string
	Banner        string
	ReadingLink   string
	MonthIconPath string
}

// LoadDefaults reads seed defaults from filename, or the built-in set when filename is empty.
func LoadDefaults(filename string) (Defaults, error) {
	data := builtin
	if filename != "" {
		var err error
		data, err = os.ReadFile(filename)
		if err != nil {
			return Defaults{}, fmt.Errorf("reading defaults file: %w", err)
		}
	}
	return ParseDefaults(data)
}

// MustBuiltin returns the built-in defaults. The embedded file is validated by tests.
func MustBuiltin() Defaults {
	d, err := ParseDefaults(builtin)
	if err != nil {
		panic(err)
	}
	return d
}

func ParseDefaults(data []byte) (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	seen := map[string]bool{}
	for i, h := range d.Habits {
		day, ok := schema.CanonicalWeekday(h.Day)
		if !ok {
			return Defaults{}, fmt.Errorf("habits[%d]: unknown weekday %q", i, h.Day)
		}
		if seen[day] {
			return Defaults{}, fmt.Errorf("habits[%d]: %s listed twice", i, day)
		}
		seen[day] = true
		d.Habits[i].Day = day
	}
	if len(d.ReviewQuestions) == 0 {
		return Defaults{}, errors.New("review_questions cannot be empty")
	}
	if len(d.MonthStates) == 0 {
		return Defaults{}, errors.New("month_states cannot be empty")
	}
	return d, nil
}

// Months expands the month template into one preset per calendar month.
func (d Defaults) Months() []MonthPreset {
	presets := make([]MonthPreset, 0, len(schema.MonthNames))
	for _, name := range schema.MonthNames {
		lower := strings.ToLower(name)
		presets = append(presets, MonthPreset{
			Name:          name,
			IconPath:      d.MonthStates[0],
			Banner:        strings.ReplaceAll(d.Month.Banner, "{month}", lower),
			ReadingLink:   strings.ReplaceAll(d.Month.ReadingLink, "{month}", lower),
			MonthIconPath: strings.ReplaceAll(d.Month.MonthIcon, "{month}", lower),
		})
	}
	return presets
}

// NextMonthState returns the icon that follows current in the state cycle.
// Unknown icons restart the cycle.
func (d Defaults) NextMonthState(current string) string {
	for i, s := range d.MonthStates {
		if s == current {
			return d.MonthStates[(i+1)%len(d.MonthStates)]
		}
	}
	return d.MonthStates[0]
}
