package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	matchhttp "khidmaBack/internal/matching/http"
)

type application struct {
	errorLog    *log.Logger
	infoLog     *log.Logger
	matchServer *matchhttp.Server
}

// appLogger adapts the two std loggers to the module Logger interface.
type appLogger struct {
	info  *log.Logger
	error *log.Logger
}

func (l appLogger) Infof(format string, args ...interface{})  { l.info.Printf(format, args...) }
func (l appLogger) Errorf(format string, args ...interface{}) { l.error.Printf(format, args...) }

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func openRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to ping redis: %v", err)
		return nil, err
	}
	return rdb, nil
}

// newMessagingClient builds the FCM client when FIREBASE_CREDENTIALS is set.
// Without credentials push notifications are disabled and the client is nil.
func newMessagingClient(ctx context.Context) (*messaging.Client, error) {
	credentials := os.Getenv("FIREBASE_CREDENTIALS")
	if credentials == "" {
		log.Println("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return nil, nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		return nil, err
	}
	return app.Messaging(ctx)
}
