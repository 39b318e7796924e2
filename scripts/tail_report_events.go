//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
)

// Печатает события отчётов из Redis Stream по мере поступления.
// go run scripts/tail_report_events.go -redis localhost:6379 -stream skate:stream:reports:events
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "skate:stream:reports:events", "Report events stream")
	fromStart := flag.Bool("from-start", false, "Print existing events first")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	lastID := "$"
	if *fromStart {
		lastID = "0"
	}

	fmt.Printf("Listening on %s (Ctrl+C to stop)\n", *stream)

	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Printf("Failed to read stream: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				data, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event map[string]interface{}
				if err := json.Unmarshal([]byte(data), &event); err != nil {
					log.Printf("Skipping malformed event %s: %v", msg.ID, err)
					continue
				}

				pretty, _ := json.MarshalIndent(event, "", "  ")
				fmt.Printf("[%s] %s\n", msg.ID, pretty)
			}
		}
	}
}
