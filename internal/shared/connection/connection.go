package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// retryDelay is a var so tests can shorten it.
var retryDelay = 5 * time.Second

// withRetry calls dial up to attempts times and returns the last error on exhaustion.
func withRetry(name string, attempts int, logger *zap.Logger, dial func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = dial(); lastErr == nil {
			logger.Info("connected", zap.String("target", name), zap.Int("attempt", i))
			return nil
		}
		logger.Warn("connect attempt failed",
			zap.String("target", name),
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr),
		)
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("%s connection failed after %d attempts: %w", name, attempts, lastErr)
}

// ConnectGORMWithRetry opens the Postgres record store and pings it before returning.
func ConnectGORMWithRetry(dsn string, attempts int, logger *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	err := withRetry("postgres", attempts, logger, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	})
	return db, err
}

func ConnectRedisWithRetry(addr string, attempts int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	err := withRetry("redis", attempts, logger, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectKafkaWithRetry waits until the broker answers and returns a writer bound to it.
// Topics are set per message.
func ConnectKafkaWithRetry(broker string, attempts int, logger *zap.Logger) (*kafka.Writer, error) {
	err := withRetry("kafka", attempts, logger, func() error {
		conn, err := kafka.Dial("tcp", broker)
		if err != nil {
			return err
		}
		defer conn.Close()
		_, err = conn.Controller()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, nil
}

// WithTx binds a gorm session to an open *sql.Tx so repository writes join the caller's
// transaction. A nil tx returns the plain context-bound session.
func WithTx(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	scoped := db.WithContext(ctx)
	if tx != nil {
		scoped.Statement.ConnPool = tx
	}
	return scoped
}
