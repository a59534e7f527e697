package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// Local pages that never reach the server.
const (
	BlogFile  = "blog.json"
	IdeasFile = "ideas_and_plans.json"
)

// ProjectSections are the note columns of the blog page, in display order.
var ProjectSections = []string{"prose", "drawing", "poems", "music"}

var (
	ErrNoEntry = errors.New("no such entry")
	ErrEmpty   = errors.New("text is required")
)

// BlogTask is one item of the blog to-do list.
type BlogTask struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// BlogLink is a coloured link shown on the blog page.
type BlogLink struct {
	Link     string `json:"link"`
	Colour   string `json:"colour"`
	Contents string `json:"contents"`
}

// Blog is the content of blog.json.
type Blog struct {
	Mail            string            `json:"mail"`
	ToDo            []BlogTask        `json:"to_do"`
	CurrentProjects map[string]string `json:"current_projects"`
	Links           []BlogLink        `json:"links"`
}

// Pages reads and writes the local JSON pages below the data folder.
type Pages struct {
	dir string
}

func NewPages(dataDir string) *Pages {
	return &Pages{dir: dataDir}
}

func (p *Pages) Path(name string) string {
	return filepath.Join(p.dir, name)
}

// load decodes name into a key map. A missing file reads as empty.
func (p *Pages) load(name string) (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(p.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

// update sets key of name to value and keeps every other key as it was.
func (p *Pages) update(name, key string, value any) error {
	doc, err := p.load(name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s.%s: %w", name, key, err)
	}
	doc[key] = raw

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", p.dir, err)
	}
	if err := atomic.WriteFile(p.Path(name), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	log.Debugf("wrote %s", p.Path(name))
	return nil
}

func field[T any](doc map[string]json.RawMessage, key string, v *T) error {
	raw, ok := doc[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Blog returns the blog page.
func (p *Pages) Blog() (Blog, error) {
	var b Blog
	doc, err := p.load(BlogFile)
	if err != nil {
		return b, err
	}
	if err := field(doc, "mail", &b.Mail); err != nil {
		return b, err
	}
	if err := field(doc, "to_do", &b.ToDo); err != nil {
		return b, err
	}
	if err := field(doc, "current_projects", &b.CurrentProjects); err != nil {
		return b, err
	}
	if err := field(doc, "links", &b.Links); err != nil {
		return b, err
	}
	if b.ToDo == nil {
		b.ToDo = []BlogTask{}
	}
	if b.CurrentProjects == nil {
		b.CurrentProjects = map[string]string{}
	}
	return b, nil
}

func (p *Pages) todo() ([]BlogTask, error) {
	doc, err := p.load(BlogFile)
	if err != nil {
		return nil, err
	}
	tasks := []BlogTask{}
	err = field(doc, "to_do", &tasks)
	return tasks, err
}

// TaskIndex finds a to-do item by its 1-based number or exact text.
func TaskIndex(tasks []BlogTask, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return 0, fmt.Errorf("task number %d: %w", n, ErrNoEntry)
		}
		return n - 1, nil
	}
	i := slices.IndexFunc(tasks, func(t BlogTask) bool { return t.Task == ref })
	if i < 0 {
		return 0, fmt.Errorf("task %q: %w", ref, ErrNoEntry)
	}
	return i, nil
}

// AddTask appends an open task to the to-do list.
func (p *Pages) AddTask(task string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return ErrEmpty
	}
	tasks, err := p.todo()
	if err != nil {
		return err
	}
	return p.update(BlogFile, "to_do", append(tasks, BlogTask{Task: task}))
}

// DeleteTask removes the task ref names and returns its text.
func (p *Pages) DeleteTask(ref string) (string, error) {
	tasks, err := p.todo()
	if err != nil {
		return "", err
	}
	i, err := TaskIndex(tasks, ref)
	if err != nil {
		return "", err
	}
	text := tasks[i].Task
	return text, p.update(BlogFile, "to_do", slices.Delete(tasks, i, i+1))
}

// SetTaskState marks the task ref names as completed or open and returns its text.
func (p *Pages) SetTaskState(ref string, completed bool) (string, error) {
	tasks, err := p.todo()
	if err != nil {
		return "", err
	}
	i, err := TaskIndex(tasks, ref)
	if err != nil {
		return "", err
	}
	tasks[i].Completed = completed
	return tasks[i].Task, p.update(BlogFile, "to_do", tasks)
}

// SetProject replaces the notes of one project section.
func (p *Pages) SetProject(section, text string) error {
	section = strings.ToLower(strings.TrimSpace(section))
	if !slices.Contains(ProjectSections, section) {
		return fmt.Errorf("project section %q (want one of %s): %w",
			section, strings.Join(ProjectSections, ", "), ErrNoEntry)
	}
	doc, err := p.load(BlogFile)
	if err != nil {
		return err
	}
	projects := map[string]string{}
	if err := field(doc, "current_projects", &projects); err != nil {
		return err
	}
	for _, s := range ProjectSections {
		if _, ok := projects[s]; !ok {
			projects[s] = ""
		}
	}
	projects[section] = strings.TrimSpace(text)
	return p.update(BlogFile, "current_projects", projects)
}

// Ideas returns the text of the ideas and plans page.
func (p *Pages) Ideas() (string, error) {
	doc, err := p.load(IdeasFile)
	if err != nil {
		return "", err
	}
	var text string
	err = field(doc, "text", &text)
	return text, err
}

// SetIdeas replaces the text of the ideas and plans page.
func (p *Pages) SetIdeas(text string) error {
	return p.update(IdeasFile, "text", strings.TrimSpace(text))
}
