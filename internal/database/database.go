package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/workviyo/taskboard-api/internal/config"
	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/repository/mongostore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection owns the store used by the process. It is opened once at
// startup and injected into everything that needs persistence.
type Connection struct {
	driver string

	gormDB *gorm.DB

	mongoClient *mongo.Client
	mongoDB     *mongo.Database
}

// Open connects to the store selected by cfg.StoreDriver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (*Connection, error) {
	if cfg.StoreDriver == config.DriverMongo {
		return openMongo(ctx, cfg)
	}

	logLevel := logger.Info
	if cfg.GinMode == "release" {
		logLevel = logger.Warn
	}
	gormLogger := logger.Default.LogMode(logLevel)

	if cfg.StoreDriver == config.DriverSQLite {
		db, err := OpenSQLite(cfg.SQLitePath, gormLogger)
		if err != nil {
			return nil, err
		}
		return NewGormConnection(cfg.StoreDriver, db), nil
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(gormLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("Database connection established (%s)", cfg.StoreDriver)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return NewGormConnection(cfg.StoreDriver, db), nil
}

// OpenSQLite opens and migrates a SQLite database. The pool is limited to
// one connection: SQLite serializes writers, and every connection to
// ":memory:" would otherwise see its own empty database.
func OpenSQLite(path string, l logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), GormConfig(l))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewGormConnection wraps an already opened gorm handle.
func NewGormConnection(driver string, db *gorm.DB) *Connection {
	return &Connection{driver: driver, gormDB: db}
}

// GormConfig is the gorm configuration shared by the server and tests.
// Timestamps are generated in UTC so that range queries compare equal
// layouts on every driver.
func GormConfig(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

func openMongo(ctx context.Context, cfg *config.Config) (*Connection, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.MongoTimeout).
		SetMaxPoolSize(cfg.MongoMaxPool)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to reach MongoDB: %w", err)
	}
	log.Println("MongoDB connection established")

	db := client.Database(cfg.MongoDatabase)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Connection{driver: config.DriverMongo, mongoClient: client, mongoDB: db}, nil
}

// Driver returns the configured store driver name.
func (c *Connection) Driver() string {
	return c.driver
}

// Repositories returns the repository set of the open store.
func (c *Connection) Repositories() *repository.Repositories {
	if c.mongoDB != nil {
		return mongostore.NewRepositories(c.mongoDB)
	}
	return repository.NewGormRepositories(c.gormDB)
}

// Ping reports whether the store is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if c.mongoClient != nil {
		return c.mongoClient.Ping(ctx, nil)
	}
	if c.gormDB == nil {
		return errors.New("database not opened")
	}
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the store connection.
func (c *Connection) Close(ctx context.Context) error {
	if c.mongoClient != nil {
		return c.mongoClient.Disconnect(ctx)
	}
	if c.gormDB == nil {
		return nil
	}
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
