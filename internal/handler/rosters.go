package handler

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/report"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/roster"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/sheet"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/utils"
)

// isRosterInputError 判断是否是输入导致的排班失败，这类错误需要原样告诉调用方
func isRosterInputError(err error) bool {
	return errors.Is(err, roster.ErrInsufficientCandidates) ||
		errors.Is(err, roster.ErrUnknownPerson) ||
		errors.Is(err, roster.ErrDuplicateCandidate) ||
		errors.Is(err, roster.ErrDuplicateDay) ||
		errors.Is(err, roster.ErrDuplicatePerson)
}

func rosterInputDigest(name string, input *domain.RosterInput) (string, error) {
	// encoding/json 对 map 的键排序，相同的输入一定得到相同的结果
	data, err := json.Marshal(struct {
		Name  string              `json:"name"`
		Input *domain.RosterInput `json:"input"`
	}{name, input})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func rosterCacheKey(digest string) string {
	return fmt.Sprintf("roster_result_%s", digest)
}

func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string              `json:"name" validate:"required"`
		Days         []string            `json:"days" validate:"required,min=1,dive,required"`
		Availability map[string][]string `json:"availability" validate:"required"`
		People       []domain.Person     `json:"people" validate:"required,min=4,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	input := &domain.RosterInput{
		Days:         req.Days,
		Availability: req.Availability,
		People:       req.People,
	}

	if err := utils.ValidateRosterInput(input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.generate(w, r, req.Name, input)
}

func (h *Handler) GenerateRosterFromCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.config.Server.MaxUploadSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	name := r.FormValue("name")
	if err := h.validate.Var(name, "required"); err != nil {
		h.errorResponse(w, r, "排班名称不能为空")
		return
	}

	availabilityFile, _, err := r.FormFile("availability")
	if err != nil {
		h.errorResponse(w, r, "缺少空闲表文件")
		return
	}
	defer availabilityFile.Close()

	attributesFile, _, err := r.FormFile("attributes")
	if err != nil {
		h.errorResponse(w, r, "缺少属性表文件")
		return
	}
	defer attributesFile.Close()

	availability, err := sheet.ReadAvailability(availabilityFile, h.config.Roster.AvailableMark)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	people, err := sheet.ReadAttributes(attributesFile, h.config.Roster.CommitteeMark)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	input := &domain.RosterInput{
		Days:         availability.Days,
		Availability: availability.ByDay,
		People:       people,
	}

	if err := utils.ValidateRosterInput(input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.generate(w, r, name, input)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, name string, input *domain.RosterInput) {
	start := time.Now()
	builder, err := roster.New(input)
	if err != nil {
		h.metrics.ObserveGeneration(time.Since(start), 0, err)
		h.rosterError(w, r, err)
		return
	}

	// 相同的输入在缓存有效期内直接返回已经保存的排班，既不重复排班也不重复保存
	digest, err := rosterInputDigest(name, input)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	existing, err := h.cachedRoster(ctx, digest)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing != nil {
		h.metrics.CacheHit()
		existing.Summary = report.Summarize(existing.Days, existing.Counts, domain.NewAttributes(existing.People))
		h.successResponse(w, r, "排班已存在", existing)
		return
	}

	// 自动排班
	res, err := builder.Build()
	if err != nil {
		h.metrics.ObserveGeneration(time.Since(start), 0, err)
		switch {
		case isRosterInputError(err):
			h.rosterError(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	result := &domain.Roster{
		Name:    name,
		Days:    res.Days,
		People:  input.People,
		Counts:  res.Counts,
		Summary: report.Summarize(res.Days, res.Counts, domain.NewAttributes(input.People)),
	}
	h.metrics.ObserveGeneration(time.Since(start), len(result.Summary.FallbackDays), nil)

	if err := h.repository.InsertRoster(result); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Set(ctx, rosterCacheKey(digest), result.ID, time.Duration(h.config.Redis.ResultExpiration)*time.Second).Err(); err != nil {
		slog.Warn("无法写入排班缓存", "roster_id", result.ID, "error", err)
	}

	h.successResponse(w, r, "自动排班成功", result)
}

// cachedRoster 返回缓存中记录的排班，未命中时返回 nil。redis 不可用时视为未命中
func (h *Handler) cachedRoster(ctx context.Context, digest string) (*domain.Roster, error) {
	cached, err := h.redisClient.Get(ctx, rosterCacheKey(digest)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("无法读取排班缓存", "error", err)
		}
		return nil, nil
	}

	existing, err := h.repository.GetRosterByID(cached)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// 缓存中的排班已经被删除，需要重新排班
			return nil, nil
		}
		return nil, err
	}

	return existing, nil
}

func (h *Handler) GetAllRosters(w http.ResponseWriter, r *http.Request) {
	rosters, err := h.repository.GetAllRosters()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有排班成功", rosters)
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(RosterCtx).(*domain.Roster)
	result.Summary = report.Summarize(result.Days, result.Counts, domain.NewAttributes(result.People))

	h.successResponse(w, r, "获取排班成功", result)
}

func (h *Handler) GetRosterSummary(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(RosterCtx).(*domain.Roster)
	summary := report.Summarize(result.Days, result.Counts, domain.NewAttributes(result.People))

	h.successResponse(w, r, "获取排班统计成功", summary)
}

func (h *Handler) DeleteRoster(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(RosterCtx).(*domain.Roster)

	if err := h.repository.DeleteRoster(result.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "排班不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除排班成功", nil)
}

func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(RosterCtx).(*domain.Roster)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roster-%s.csv"`, strconv.FormatInt(result.ID, 10)))

	if err := sheet.WriteSchedule(w, result.Days); err != nil {
		// header 已经写出，只能记录日志
		h.logInternalServerError(r, err)
	}
}

// assignmentMails 为每个填写了邮箱且被排班的人生成一封通知邮件
func assignmentMails(result *domain.Roster) []domain.MailMessage {
	daysByPerson := make(map[string][]string)
	for _, item := range result.Days {
		for _, id := range item.Members {
			daysByPerson[id] = append(daysByPerson[id], item.Day)
		}
	}

	mails := make([]domain.MailMessage, 0)
	for _, p := range result.People {
		days, ok := daysByPerson[p.ID]
		if !ok || p.Email == "" {
			continue
		}
		mails = append(mails, domain.MailMessage{
			Type: domain.MailTypeRosterAssignment,
			To:   p.Email,
			Data: domain.RosterAssignmentMailData{
				RosterName: result.Name,
				PersonID:   p.ID,
				Days:       days,
			},
		})
	}

	return mails
}

func (h *Handler) PublishRoster(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(RosterCtx).(*domain.Roster)

	mails := assignmentMails(result)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	// 同一次发布的邮件共用一个 CorrelationId，方便在 mail worker 的日志中追踪
	batchID := uuid.New().String()

	for _, mailMessage := range mails {
		// 序列化邮件
		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		// 发送邮件到消息队列中
		if err := h.mailChannel.PublishWithContext(
			ctx,
			"",
			h.config.RabbitMQ.Queue,
			true,
			false,
			amqp.Publishing{
				ContentType:   "application/json",
				DeliveryMode:  amqp.Persistent,
				MessageId:     uuid.New().String(),
				CorrelationId: batchID,
				Timestamp:     time.Now(),
				Body:          mailData,
			},
		); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.metrics.MailsEnqueued(len(mails))

	h.successResponse(w, r, "排班通知已加入发送队列", map[string]any{"mails": len(mails), "batchID": batchID})
}
