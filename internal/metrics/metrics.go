package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder 记录排班生成相关的指标
type Recorder struct {
	generations   *prometheus.CounterVec
	duration      prometheus.Histogram
	fallbackDays  prometheus.Counter
	cacheHits     prometheus.Counter
	mailsEnqueued prometheus.Counter
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			// 已经注册过则复用已有的 collector
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewRecorder 在 reg 上注册指标，reg 为 nil 时使用默认的 registerer
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{}
	var err error

	if r.generations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_generations_total",
		Help: "Total number of roster generation attempts",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_generation_duration_seconds",
		Help:    "Time spent building a roster",
		Buckets: prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if r.fallbackDays, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_fallback_days_total",
		Help: "Days scheduled without any committee member available",
	})); err != nil {
		return nil, err
	}
	if r.cacheHits, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_cache_hits_total",
		Help: "Generation requests answered from the result cache",
	})); err != nil {
		return nil, err
	}
	if r.mailsEnqueued, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_mails_enqueued_total",
		Help: "Assignment notification mails published to the queue",
	})); err != nil {
		return nil, err
	}

	return r, nil
}

// ObserveGeneration 记录一次排班生成，err 不为 nil 表示失败
func (r *Recorder) ObserveGeneration(elapsed time.Duration, fallbackDays int, err error) {
	if err != nil {
		r.generations.WithLabelValues("failure").Inc()
		return
	}
	r.generations.WithLabelValues("success").Inc()
	r.duration.Observe(elapsed.Seconds())
	r.fallbackDays.Add(float64(fallbackDays))
}

func (r *Recorder) CacheHit() {
	r.cacheHits.Inc()
}

func (r *Recorder) MailsEnqueued(n int) {
	r.mailsEnqueued.Add(float64(n))
}
