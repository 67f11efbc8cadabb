package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"crpt-client/client/dispatch"
	"crpt-client/client/dispatch/domain"
	"crpt-client/client/dispatch/infra"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// loadgen demonstra o dispatcher em ambiente multi-goroutine: WORKERS
// goroutines disparando TASKS documentos por um único Dispatcher
// compartilhado, com no máximo REQUEST_LIMIT chamadas por WINDOW.
func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mem := infra.NewMemoryStatsStore()
	stats := []domain.StatsStore{mem}

	if cfg.statsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancelPing()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		stats = append(stats, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsTrackDocTypes(true),
		))
	}

	var transport domain.Transport
	if cfg.apiURL != "" {
		transport = infra.NewHTTPTransport(infra.WithEndpoint(cfg.apiURL))
	}

	d, err := dispatch.New(dispatch.Options{
		Window:    cfg.window,
		Capacity:  cfg.requestLimit,
		Transport: transport,
		Stats:     multiStats(stats),
	})
	if err != nil {
		log.Fatalf("dispatcher error: %v", err)
	}
	defer d.Close()

	// pacer opcional de submissão (espaça a entrada de tarefas; a admissão
	// por janela continua sendo responsabilidade do dispatcher)
	var pacer *rate.Limiter
	if cfg.submitRPS > 0 {
		pacer = rate.NewLimiter(rate.Limit(cfg.submitRPS), 1)
	}

	log.Printf("loadgen: workers=%d tasks=%d limit=%d window=%s url=%q",
		cfg.workers, cfg.tasks, cfg.requestLimit, cfg.window, cfg.apiURL)

	taskCh := make(chan int)
	var ok, failed atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < cfg.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for docNum := range taskCh {
				if pacer != nil {
					if err := pacer.Wait(ctx); err != nil {
						return
					}
				}
				resp, err := d.Call(ctx, newDocument(docNum), cfg.authToken)
				if err != nil {
					failed.Add(1)
					log.Printf("doc %d: %v", docNum, err)
					continue
				}
				ok.Add(1)
				log.Printf("doc %d: status=%d", docNum, resp.Status)
			}
		}()
	}

	for i := 1; i <= cfg.tasks; i++ {
		select {
		case taskCh <- i:
		case <-ctx.Done():
			i = cfg.tasks // para de enfileirar; workers drenam e saem
		}
	}
	close(taskCh)
	wg.Wait()

	total := mem.Total()
	log.Printf("done in %s: ok=%d failed=%d not_admitted=%d max_wait=%s",
		time.Since(start), ok.Load(), failed.Load(), total.NotAdmitted, mem.MaxWait())
}

// multiStats replica cada evento para todos os stores (best-effort).
type multiStats []domain.StatsStore

func (m multiStats) Record(ctx context.Context, ev domain.CallEvent) error {
	for _, s := range m {
		_ = s.Record(ctx, ev)
	}
	return nil
}

// newDocument monta um documento de exemplo numerado, com o mínimo de campos
// preenchidos para o payload ser aceito.
func newDocument(docNum int) domain.Document {
	today := domain.Today()
	return domain.Document{
		DocID:          strconv.Itoa(docNum),
		Description:    domain.Description{ParticipantInn: ""},
		DocType:        "LP_INTRODUCE_GOODS",
		ProductionDate: today,
		Products: []domain.Product{{
			CertificateDocumentDate: today,
			ProductionDate:          today,
		}},
		RegDate: today,
	}
}

type config struct {
	requestLimit int
	window       time.Duration
	workers      int
	tasks        int
	authToken    string
	apiURL       string
	submitRPS    float64

	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.requestLimit = getenvIntDefault("REQUEST_LIMIT", 3)
	cfg.window = getenvDurationDefault("WINDOW", 1*time.Second)
	cfg.workers = getenvIntDefault("WORKERS", 30)
	cfg.tasks = getenvIntDefault("TASKS", 100)
	cfg.authToken = getenvDefault("AUTH_TOKEN", "token")
	cfg.apiURL = os.Getenv("API_URL")
	cfg.submitRPS = getenvFloatDefault("SUBMIT_RPS", 0)

	cfg.statsRedisAddr = os.Getenv("STATS_REDIS_ADDR")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "dispatch:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)

	if cfg.requestLimit <= 0 {
		return config{}, errors.New("REQUEST_LIMIT must be > 0")
	}
	if cfg.window <= 0 {
		return config{}, errors.New("WINDOW must be > 0")
	}
	if cfg.workers <= 0 {
		return config{}, errors.New("WORKERS must be > 0")
	}
	if cfg.tasks <= 0 {
		return config{}, errors.New("TASKS must be > 0")
	}
	if cfg.submitRPS < 0 {
		return config{}, errors.New("SUBMIT_RPS must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
