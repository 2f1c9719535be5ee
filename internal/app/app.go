package app

import (
	"log"

	"vibewiki_backend/internal/config"
	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/repository"
	"vibewiki_backend/internal/service"
	"vibewiki_backend/pkg/logger"
	"vibewiki_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// App is the composition root the embedding layer (web UI bridge,
// tooling) constructs once at startup. It owns the loaded corpus, the
// search index and the services; the corpus and index are immutable
// for the app's lifetime.
type App struct {
	Config *config.Config
	Corpus *repository.Corpus

	SearchIndex     *service.SearchIndex
	Recommendations *service.RecommendationService
	Gamification    *service.GamificationService
	Chatbot         *service.ChatbotService
	Contributions   *service.ContributionService
	Reviews         *service.ReviewService
	Progress        *repository.ProgressRepository
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	monitoring.Init()

	contentRepo := repository.NewContentRepository(cfg.Content.Dir)
	corpus, err := contentRepo.LoadCorpus()
	if err != nil {
		log.Fatalf("Failed to load content corpus: %v", err)
	}
	logger.Log.Info("Content corpus loaded",
		zap.Int("articles", len(corpus.Articles)),
		zap.Int("tutorials", len(corpus.Tutorials)),
		zap.Int("paths", len(corpus.Paths)),
	)

	lang, err := language.Parse(cfg.Content.Language)
	if err != nil {
		logger.Log.Warn("Invalid content language, falling back to Arabic",
			zap.String("language", cfg.Content.Language), zap.Error(err))
		lang = language.Arabic
	}

	index := service.NewSearchIndex(corpus.Articles, cfg.Search.Threshold, lang)

	var progressRepo *repository.ProgressRepository
	if cfg.Storage.Dir != "" {
		store, err := repository.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			log.Fatalf("Failed to open progress store: %v", err)
		}
		progressRepo = repository.NewProgressRepository(store, cfg.Storage.ProgressKey)
	}

	app := &App{
		Config:      cfg,
		Corpus:      corpus,
		SearchIndex: index,
		Recommendations: service.NewRecommendationService(corpus, model.RecommendationOptions{
			MaxResults:      cfg.Recommendation.MaxResults,
			MinConfidence:   cfg.Recommendation.MinConfidence,
			DiversityFactor: cfg.Recommendation.DiversityFactor,
		}),
		Gamification:  service.NewGamificationService(),
		Chatbot:       service.NewChatbotService(defaultChatRules(), cfg.Chatbot.FallbackLanguage),
		Contributions: service.NewContributionService(),
		Reviews:       service.NewReviewService(),
		Progress:      progressRepo,
	}

	logger.Log.Info("vibewiki core initialized", zap.String("mode", cfg.Server.Mode))
	return app
}

// ApplyConfig takes reloaded tuning defaults. The index and corpus are
// deliberately left untouched; corpus changes need a fresh process.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	a.Recommendations.Defaults = model.RecommendationOptions{
		MaxResults:      cfg.Recommendation.MaxResults,
		MinConfidence:   cfg.Recommendation.MinConfidence,
		DiversityFactor: cfg.Recommendation.DiversityFactor,
	}.Normalize()
	logger.Log.Info("Configuration reloaded")
}

// defaultChatRules is the built-in bilingual rule table of the
// assistant. Content teams extend it alongside the corpus.
func defaultChatRules() []model.ChatRule {
	return []model.ChatRule{
		{
			ID:        "what-is-vibe-coding",
			Keywords:  []string{"vibe", "فايب", "ai coding", "البرمجة بالذكاء"},
			ReplyAr:   "البرمجة بمساعدة الذكاء الاصطناعي تعني وصف ما تريده بلغة طبيعية وترك النموذج يكتب الشيفرة. ابدأ بمقال المقدمة.",
			ReplyEn:   "Vibe coding means describing what you want in natural language and letting the model write the code. Start with the introduction article.",
			LinkSlugs: []string{"intro-to-vibe-coding"},
		},
		{
			ID:        "prompting",
			Keywords:  []string{"prompt", "برومبت", "صياغة", "prompting"},
			ReplyAr:   "لصياغة توجيهات أفضل: كن محدداً، قسّم المهمة، وأعطِ أمثلة. راجع قسم صياغة التوجيهات.",
			ReplyEn:   "For better prompts: be specific, split the task, and give examples. See the prompting section.",
			LinkSlugs: []string{"prompt-basics"},
		},
		{
			ID:        "getting-started",
			Keywords:  []string{"start", "begin", "أبدأ", "ابدأ", "مبتدئ"},
			ReplyAr:   "ابدأ بمسار المبتدئين: مقدمة، ثم أول درس تفاعلي.",
			ReplyEn:   "Start with the beginner path: the introduction, then the first interactive tutorial.",
			LinkSlugs: []string{"beginner-path"},
		},
	}
}
