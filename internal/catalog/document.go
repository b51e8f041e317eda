package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gosimple/slug"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Defaults applied to fields a document leaves out.
const (
	DefaultDifficulty = 1
	DefaultXP         = 10
)

// Document is a catalog file: quests with their lessons and questions,
// plus the daily task list.
type Document struct {
	Version    string     `json:"version"`
	Quests     []QuestDoc `json:"quests"`
	DailyTasks []TaskDoc  `json:"daily_tasks"`
}

// QuestDoc is one quest in a catalog document.
type QuestDoc struct {
	ID         int           `json:"id"`
	Title      string        `json:"title"`
	Topic      string        `json:"topic,omitempty"`
	Difficulty int           `json:"difficulty,omitempty"`
	Lesson     string        `json:"lesson,omitempty"`
	Questions  []QuestionDoc `json:"questions"`
}

// QuestionDoc is one multiple-choice question.
type QuestionDoc struct {
	ID           int      `json:"id"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	XP           *int     `json:"xp,omitempty"`
}

// TaskDoc is one daily task.
type TaskDoc struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	XP     *int   `json:"xp,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// ValidationError lists every problem found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + strings.Join(e.Problems, "; ")
}

// CanonicalVersion returns v as a semver string with the leading "v".
func CanonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// Default returns the built-in catalog.
func Default() (*Document, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads and validates a catalog document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalog document, validates it and fills defaults.
func Load(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	compiled, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	doc.fillDefaults()
	return &doc, nil
}

// Validate runs the checks a schema cannot express: a semver version,
// unique ids and correct indexes inside the choice list.
func Validate(doc *Document) error {
	var problems []string
	if CanonicalVersion(doc.Version) == "" {
		problems = append(problems, fmt.Sprintf("version %q is not semver", doc.Version))
	}

	quests := make(map[int]bool)
	questions := make(map[int]bool)
	for _, q := range doc.Quests {
		if quests[q.ID] {
			problems = append(problems, fmt.Sprintf("duplicate quest id %d", q.ID))
		}
		quests[q.ID] = true
		if strings.TrimSpace(q.Title) == "" {
			problems = append(problems, fmt.Sprintf("quest %d: empty title", q.ID))
		}
		for _, qn := range q.Questions {
			if questions[qn.ID] {
				problems = append(problems, fmt.Sprintf("duplicate question id %d", qn.ID))
			}
			questions[qn.ID] = true
			if qn.CorrectIndex < 0 || qn.CorrectIndex >= len(qn.Choices) {
				problems = append(problems, fmt.Sprintf(
					"question %d: correct index %d out of range for %d choices",
					qn.ID, qn.CorrectIndex, len(qn.Choices)))
			}
		}
	}

	tasks := make(map[int]bool)
	for _, t := range doc.DailyTasks {
		if tasks[t.ID] {
			problems = append(problems, fmt.Sprintf("duplicate daily task id %d", t.ID))
		}
		tasks[t.ID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (d *Document) fillDefaults() {
	for i := range d.Quests {
		q := &d.Quests[i]
		if q.Topic == "" {
			q.Topic = slug.Make(q.Title)
		}
		if q.Difficulty == 0 {
			q.Difficulty = DefaultDifficulty
		}
		for j := range q.Questions {
			if q.Questions[j].XP == nil {
				xp := DefaultXP
				q.Questions[j].XP = &xp
			}
		}
	}
	for i := range d.DailyTasks {
		t := &d.DailyTasks[i]
		if t.XP == nil {
			xp := DefaultXP
			t.XP = &xp
		}
		if t.Active == nil {
			active := true
			t.Active = &active
		}
	}
}

// QuestionCount returns the number of questions across all quests.
func (d *Document) QuestionCount() int {
	n := 0
	for _, q := range d.Quests {
		n += len(q.Questions)
	}
	return n
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}
