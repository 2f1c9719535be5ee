package model

// ContentType tags the three kinds of corpus records.
type ContentType string

const (
	ContentArticle  ContentType = "article"
	ContentTutorial ContentType = "tutorial"
	ContentPath     ContentType = "path"
)

// Difficulty levels used across articles, tutorials and paths.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level maps a difficulty onto the 0/0.5/1 scale used for alignment
// scoring. Unknown or absent difficulties report ok=false and are
// skipped by callers rather than treated as beginner.
func (d Difficulty) Level() (float64, bool) {
	switch d {
	case DifficultyBeginner:
		return 0, true
	case DifficultyIntermediate:
		return 0.5, true
	case DifficultyAdvanced:
		return 1, true
	}
	return 0, false
}

func (d Difficulty) Valid() bool {
	_, ok := d.Level()
	return ok
}

type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Article is an immutable wiki article record. Reading time is not
// stored; it is derived from the content at index-build time.
type Article struct {
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Section    string      `json:"section"`
	Content    string      `json:"content"`
	Tags       []string    `json:"tags,omitempty"`
	Difficulty Difficulty  `json:"difficulty,omitempty"`
	CodeBlocks []CodeBlock `json:"codeBlocks,omitempty"`
}

type TutorialStep struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Tutorial is an interactive multi-step lesson. Duration is authored
// explicitly, in minutes.
type Tutorial struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Section       string         `json:"section"`
	Description   string         `json:"description"`
	Tags          []string       `json:"tags,omitempty"`
	Difficulty    Difficulty     `json:"difficulty,omitempty"`
	Duration      int            `json:"duration"`
	Steps         []TutorialStep `json:"steps"`
	Prerequisites []string       `json:"prerequisites,omitempty"`
}

type PathModule struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LearningPath groups modules into a guided track. Audience is a
// free-text description ("for beginner developers", "للمبتدئين").
type LearningPath struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	Tags          []string     `json:"tags,omitempty"`
	Difficulty    Difficulty   `json:"difficulty,omitempty"`
	Duration      int          `json:"duration"`
	Audience      string       `json:"audience,omitempty"`
	Modules       []PathModule `json:"modules"`
	Prerequisites []string     `json:"prerequisites,omitempty"`
}
