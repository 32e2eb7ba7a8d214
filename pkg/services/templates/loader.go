package templates

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

const (
	defaultWeight   = 1
	defaultMaxScore = 5
)

type questionDef struct {
	Code        string   `yaml:"code"`
	Text        string   `yaml:"text"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Choices     []string `yaml:"choices"`
	Required    *bool    `yaml:"required"`
	Weight      int      `yaml:"weight"`
	MaxScore    int      `yaml:"max_score"`
}

type sectionDef struct {
	Name        string        `yaml:"name"`
	Code        string        `yaml:"code"`
	Description string        `yaml:"description"`
	Questions   []questionDef `yaml:"questions"`
}

type templateDef struct {
	Name        string       `yaml:"name"`
	Code        string       `yaml:"code"`
	Description string       `yaml:"description"`
	Standard    string       `yaml:"standard"`
	Version     string       `yaml:"version"`
	Sections    []sectionDef `yaml:"sections"`
}

// Parse reads a YAML questionnaire definition and validates it into a
// ready-to-persist template. Section and question order follows file order.
func Parse(r io.Reader) (*domain.Template, error) {
	var def templateDef
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode template definition: %w", err)
	}
	return build(def)
}

func ParseFile(path string) (*domain.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template definition: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func build(def templateDef) (*domain.Template, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if strings.TrimSpace(def.Code) == "" {
		return nil, fmt.Errorf("template code is required")
	}
	if len(def.Sections) == 0 {
		return nil, fmt.Errorf("template %s has no sections", def.Code)
	}

	t := domain.Template{
		ID:          uuid.NewString(),
		Name:        def.Name,
		Code:        def.Code,
		Description: def.Description,
		Standard:    def.Standard,
		Version:     def.Version,
		Active:      true,
		Sections:    make([]domain.Section, 0, len(def.Sections)),
	}

	for i, sd := range def.Sections {
		if strings.TrimSpace(sd.Name) == "" || strings.TrimSpace(sd.Code) == "" {
			return nil, fmt.Errorf("section %d: name and code are required", i+1)
		}
		section := domain.Section{
			ID:          uuid.NewString(),
			TemplateID:  t.ID,
			Name:        sd.Name,
			Code:        sd.Code,
			Description: sd.Description,
			Order:       i + 1,
			Questions:   make([]domain.Question, 0, len(sd.Questions)),
		}
		for j, qd := range sd.Questions {
			q, err := buildQuestion(section.ID, j+1, qd)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", sd.Code, err)
			}
			section.Questions = append(section.Questions, q)
		}
		t.Sections = append(t.Sections, section)
	}
	return &t, nil
}

func buildQuestion(sectionID string, order int, qd questionDef) (domain.Question, error) {
	if strings.TrimSpace(qd.Code) == "" || strings.TrimSpace(qd.Text) == "" {
		return domain.Question{}, fmt.Errorf("question %d: code and text are required", order)
	}

	qType := domain.QuestionType(qd.Type)
	switch qType {
	case domain.QuestionTypeYesNo, domain.QuestionTypeScale, domain.QuestionTypeText:
	case domain.QuestionTypeMultipleChoice:
		if len(qd.Choices) < 2 {
			return domain.Question{}, fmt.Errorf("question %s: multiple_choice needs at least 2 choices", qd.Code)
		}
	default:
		return domain.Question{}, fmt.Errorf("question %s: unknown type %q", qd.Code, qd.Type)
	}

	weight := qd.Weight
	if weight == 0 {
		weight = defaultWeight
	}
	maxScore := qd.MaxScore
	if maxScore == 0 {
		maxScore = defaultMaxScore
	}
	if weight < 0 || maxScore < 0 {
		return domain.Question{}, fmt.Errorf("question %s: weight and max_score must be positive", qd.Code)
	}

	required := true
	if qd.Required != nil {
		required = *qd.Required
	}

	return domain.Question{
		ID:          uuid.NewString(),
		SectionID:   sectionID,
		Code:        qd.Code,
		Text:        qd.Text,
		Description: qd.Description,
		Type:        qType,
		Choices:     qd.Choices,
		Required:    required,
		Order:       order,
		Weight:      weight,
		MaxScore:    maxScore,
	}, nil
}
