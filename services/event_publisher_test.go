package services

import (
	"testing"
	"time"
)

func TestOrderEventPublisherClose(t *testing.T) {
	// The writer dials lazily, so an idle publisher never touches the
	// broker. Close must drain the inbox and return.
	p := NewOrderEventPublisher([]string{"localhost:9092"}, "orders.created")

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after draining the inbox")
	}
}
