package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"

	json "github.com/goccy/go-json"
)

// ContentRepository loads the static content corpus from a directory
// of JSON files (articles.json, tutorials.json, paths.json). The
// corpus is read once at startup and treated as immutable afterwards.
type ContentRepository struct {
	Dir string
}

func NewContentRepository(dir string) *ContentRepository {
	return &ContentRepository{Dir: dir}
}

type Corpus struct {
	Articles  []model.Article
	Tutorials []model.Tutorial
	Paths     []model.LearningPath
}

func (c *Corpus) ArticleBySlug(slug string) (model.Article, error) {
	for _, a := range c.Articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return model.Article{}, fmt.Errorf("article %q: %w", slug, util.ErrContentNotFound)
}

func (c *Corpus) TutorialByID(id string) (model.Tutorial, error) {
	for _, t := range c.Tutorials {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Tutorial{}, fmt.Errorf("tutorial %q: %w", id, util.ErrContentNotFound)
}

func (c *Corpus) PathByID(id string) (model.LearningPath, error) {
	for _, p := range c.Paths {
		if p.ID == id {
			return p, nil
		}
	}
	return model.LearningPath{}, fmt.Errorf("path %q: %w", id, util.ErrContentNotFound)
}

func (r *ContentRepository) LoadCorpus() (*Corpus, error) {
	var corpus Corpus

	if err := r.loadFile("articles.json", &corpus.Articles); err != nil {
		return nil, err
	}
	if err := r.loadFile("tutorials.json", &corpus.Tutorials); err != nil {
		return nil, err
	}
	if err := r.loadFile("paths.json", &corpus.Paths); err != nil {
		return nil, err
	}

	corpus.Articles = validArticles(corpus.Articles)
	corpus.Tutorials = validTutorials(corpus.Tutorials)
	corpus.Paths = validPaths(corpus.Paths)

	return &corpus, nil
}

// loadFile decodes one corpus file. A missing file is an empty
// collection, not an error: content types are authored independently.
func (r *ContentRepository) loadFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Validation at the ingestion boundary: records without a stable id
// are dropped, malformed optional fields are normalized to absent.
func validArticles(in []model.Article) []model.Article {
	out := in[:0]
	for _, a := range in {
		if a.Slug == "" || a.Title == "" {
			continue
		}
		if a.Difficulty != "" && !a.Difficulty.Valid() {
			a.Difficulty = ""
		}
		out = append(out, a)
	}
	return out
}

func validTutorials(in []model.Tutorial) []model.Tutorial {
	out := in[:0]
	for _, t := range in {
		if t.ID == "" || t.Title == "" {
			continue
		}
		if t.Difficulty != "" && !t.Difficulty.Valid() {
			t.Difficulty = ""
		}
		out = append(out, t)
	}
	return out
}

func validPaths(in []model.LearningPath) []model.LearningPath {
	out := in[:0]
	for _, p := range in {
		if p.ID == "" || p.Title == "" {
			continue
		}
		if p.Difficulty != "" && !p.Difficulty.Valid() {
			p.Difficulty = ""
		}
		out = append(out, p)
	}
	return out
}
