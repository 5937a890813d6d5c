package di

import (
	"fmt"
	"time"

	"VaderBoot/internal/domain/repository"
	"VaderBoot/internal/handler/api"
	"VaderBoot/internal/services/marketdata"
	"VaderBoot/internal/services/notify"
	"VaderBoot/internal/services/scoring"
	"VaderBoot/internal/usecase"
	"VaderBoot/pkg/config"
	xhttp "VaderBoot/pkg/http"
	pkgkafka "VaderBoot/pkg/kafka"
	applogger "VaderBoot/pkg/logger"
	"VaderBoot/pkg/metrics"
	pkgredis "VaderBoot/pkg/redis"
	"VaderBoot/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvidePolicy maps the engine section onto the scoring policy.
func ProvidePolicy(cfg *config.Config) (scoring.Policy, error) {
	p := scoring.Policy{
		Threshold:            cfg.Engine.Threshold,
		RewardRisk:           cfg.Engine.RewardRisk,
		MinKellyFraction:     cfg.Engine.MinKellyFraction,
		HighConfidenceMargin: cfg.Engine.HighConfidenceMargin,
		CaveatBelow:          cfg.Engine.CaveatBelow,
	}
	if err := p.Validate(); err != nil {
		return scoring.Policy{}, fmt.Errorf("engine policy: %w", err)
	}
	return p, nil
}

// ProvideMarketData selects the market-data provider.
func ProvideMarketData(cfg *config.Config) repository.MarketDataProvider {
	if cfg.Provider.Type == "static" {
		return marketdata.NewStaticProvider(marketdata.DemoFixtures(time.Now()))
	}
	return marketdata.NewYahooProvider(marketdata.YahooConfig{
		ChartURL:      cfg.Provider.ChartURL,
		SummaryURL:    cfg.Provider.SummaryURL,
		Timeout:       cfg.Provider.Timeout,
		RetryMax:      cfg.Provider.RetryMax,
		BackoffMin:    cfg.Provider.BackoffMin,
		BackoffMax:    cfg.Provider.BackoffMax,
		RatePerMinute: cfg.Provider.RatePerMinute,
	})
}

// ProvideFundamentalAnalyzer creates the fundamental analyzer.
func ProvideFundamentalAnalyzer(
	provider repository.MarketDataProvider,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.FundamentalAnalyzer {
	return usecase.NewFundamentalAnalyzer(provider,
		usecase.WithHistoryDays(cfg.Engine.HistoryDays),
		usecase.WithAnalysisTimeout(cfg.Engine.AnalysisTimeout),
		usecase.WithAnalyzerMetrics(m),
		usecase.WithAnalyzerLogger(l),
	)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideRedisClient connects to Redis, or returns nil when it is disabled.
func ProvideRedisClient(cfg *config.Config) (*pkgredis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := pkgredis.New(
		pkgredis.WithHost(cfg.Redis.Host),
		pkgredis.WithPort(cfg.Redis.Port),
		pkgredis.WithPassword(cfg.Redis.Password),
		pkgredis.WithDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis client: %w", err)
	}
	return client, nil
}

// ProvideNotifier fans out to every configured channel.
// A missing Telegram token disables that channel with a warning.
func ProvideNotifier(
	cfg *config.Config,
	l *applogger.Logger,
	m repository.Metrics,
	producer *pkgkafka.Producer,
	redisClient *pkgredis.Client,
) repository.Notifier {
	var channels []repository.Notifier

	tg := notify.NewTelegramNotifier(notify.TelegramConfig{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		BaseURL:  cfg.Telegram.BaseURL,
		Timeout:  cfg.Telegram.Timeout,
	})
	if tg.Enabled() {
		channels = append(channels, tg)
	} else {
		l.Warn("TELEGRAM_BOT_TOKEN not set, telegram delivery disabled")
	}
	if producer != nil {
		channels = append(channels, notify.NewKafkaNotifier(producer, cfg.Kafka.Topic))
	}
	if redisClient != nil {
		channels = append(channels, notify.NewRedisNotifier(redisClient, cfg.Redis.Channel))
	}

	if len(channels) == 0 {
		l.Warn("no notification channel configured")
		return notify.Noop{}
	}
	multi := notify.NewMulti(m, channels...)
	l.Info("notification channels ready", applogger.String("channels", multi.Name()))
	return multi
}

// ProvideSignalEngine creates the signal evaluation use case.
func ProvideSignalEngine(
	analyzer *usecase.FundamentalAnalyzer,
	notifier repository.Notifier,
	m repository.Metrics,
	policy scoring.Policy,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.SignalEngine {
	return usecase.NewSignalEngine(analyzer, notifier,
		usecase.WithPolicy(policy),
		usecase.WithNotifyTimeout(cfg.Engine.NotifyTimeout),
		usecase.WithEngineMetrics(m),
		usecase.WithEngineLogger(l),
	)
}

// ProvideHTTPHandler creates the webhook routes.
func ProvideHTTPHandler(l *applogger.Logger, engine *usecase.SignalEngine) xhttp.Handler {
	return api.NewWebhookEchoHandler(l, engine)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithBodyLimit(cfg.Server.BodyLimit),
		xhttp.WithMetrics(cfg.Metrics.Enabled),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	l *applogger.Logger,
	srv *xhttp.Server,
	producer *pkgkafka.Producer,
	redisClient *pkgredis.Client,
) *server.App {
	app := server.New(l, srv)
	if producer != nil {
		app.AddCloser("kafka producer", producer)
	}
	if redisClient != nil {
		app.AddCloser("redis", redisClient)
	}
	return app
}
