// Command observer tails a running car's snapshot feed over websocket
// and prints one line per iteration. Useful for watching the loop from
// a terminal without a dashboard.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/pwspen/vlmcar/internal/hub"
)

func main() {
	feedURL := os.Getenv("FEED_URL")
	if feedURL == "" {
		feedURL = "ws://localhost:8080/v1/observe"
	}

	fmt.Printf("connecting to %s\n", feedURL)

	conn, resp, err := websocket.DefaultDialer.Dial(feedURL, nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			fmt.Printf("dial failed: status=%d body=%s\n", resp.StatusCode, string(body))
		}
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("disconnecting")
		conn.Close()
		os.Exit(0)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Printf("read error: %v\n", err)
			return
		}

		var msg hub.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			fmt.Printf("unmarshal error: %v\n", err)
			continue
		}

		printSnapshot(&msg)
	}
}

func printSnapshot(msg *hub.Message) {
	distance := "n/a"
	if msg.Distance != nil {
		distance = fmt.Sprintf("%.0fcm", *msg.Distance)
	}

	line := fmt.Sprintf("#%d dist=%s action=%q", msg.Iteration, distance, msg.Action)
	if msg.Rationale != "" {
		line += fmt.Sprintf(" notes=%q", msg.Rationale)
	}
	if msg.Description != "" {
		line += fmt.Sprintf(" sees=%q", msg.Description)
	}
	if msg.Image != "" {
		line += fmt.Sprintf(" frame=%dB", len(msg.Image)*3/4)
	}
	fmt.Println(line)
}
