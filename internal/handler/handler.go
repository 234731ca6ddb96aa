package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        *repository.Repository
	translator        ut.Translator
	mailChannel       *amqp.Channel
	redisClient       *redis.Client
	metrics           *metrics.Recorder
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, recorder *metrics.Recorder) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 初始管理员的密码只保存哈希
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		mailChannel:       mailCh,
		redisClient:       rdb,
		metrics:           recorder,
		adminPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	if h.config.Metrics.Enabled {
		h.Mux.Handle("/metrics", promhttp.Handler())
	}

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/rosters", func(r chi.Router) {
			r.Get("/", h.GetAllRosters)
			r.Post("/generate", h.GenerateRoster)
			r.Post("/generate/csv", h.GenerateRosterFromCSV)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.roster)
				r.Get("/", h.GetRoster)
				r.Delete("/", h.DeleteRoster)
				r.Get("/summary", h.GetRosterSummary)
				r.Get("/export", h.ExportRoster)
				r.Post("/publish", h.PublishRoster)
			})
		})
	})
}
