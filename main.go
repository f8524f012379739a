package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/judgegodwins/chess-relay/api"
	"github.com/judgegodwins/chess-relay/tokens"
	"github.com/judgegodwins/chess-relay/util"
	"github.com/judgegodwins/chess-relay/ws"
	"github.com/redis/go-redis/v9"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal(err)
	}

	maker, err := tokens.NewMaker(config.TokenKind, config.TokenSecret)

	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := ws.RelayOptions{EnforceSeats: config.EnforceSeats}

	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()

		// check redis connection status
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal(err)
		}

		mirror := ws.NewMirror(rdb, config.RedisChannel, config.SendQueue)
		go mirror.Run(ctx)
		opts.Mirror = mirror

		log.Printf("mirroring game events to redis channel %v", config.RedisChannel)
	}

	relay := ws.NewRelay(opts)
	go relay.Run(ctx)

	server := api.NewServer(config, relay, maker)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Println("error shutting down:", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal(err)
	}

	log.Println("server stopped")
}
