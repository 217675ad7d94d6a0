package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nexora/internal/config"
	"nexora/internal/model"
	mysqlClient "nexora/internal/platform/mysql"
	rabbitmqClient "nexora/internal/platform/rabbitmq"
	redisClient "nexora/internal/platform/redis"
	"nexora/internal/repository"
	"nexora/internal/worker"
)

// App wires the pipeline's shared resources once at process start:
// config, MySQL, Redis, RabbitMQ, and the persist worker that drains
// crawl results into the raw store.
type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	DocumentRepo  *repository.DocumentRepository
	PersistWorker *worker.CrawlPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	docRepo := repository.NewDocumentRepository(mysqlDB)
	persistWorker := worker.NewCrawlPersistWorker(mqConn, docRepo, cfg.RabbitMQ.CrawlResultQueue, cfg.Crawler.Dedup)
	if err := persistWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start persist worker failed: %w", err)
	}

	return &App{
		Config:        cfg,
		MySQL:         mysqlDB,
		Redis:         redisCli,
		MQConn:        mqConn,
		DocumentRepo:  docRepo,
		PersistWorker: persistWorker,
		StartedAt:     time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.PersistWorker != nil {
		a.PersistWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
