package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish("hello")
	v := <-ch
	if v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusSubscribeBuffered(t *testing.T) {
	bus := New()
	ch := bus.SubscribeBuffered(2)
	if cap(ch) != 2 {
		t.Fatalf("buffer = %d", cap(ch))
	}
	// Overflow must be dropped, not block the publisher.
	bus.Publish(1)
	bus.Publish(2)
	bus.Publish(3)
	if v := <-ch; v != 1 {
		t.Fatalf("expected 1 got %v", v)
	}
	if v := <-ch; v != 2 {
		t.Fatalf("expected 2 got %v", v)
	}
	select {
	case v := <-ch:
		t.Fatalf("overflowed event delivered: %v", v)
	default:
	}
}

func TestBusSubscribeBufferedBadSize(t *testing.T) {
	bus := New()
	if got := cap(bus.SubscribeBuffered(0)); got != cap(bus.Subscribe()) {
		t.Fatalf("non-positive size should use the default buffer, got %d", got)
	}
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	bus.Publish("dropped")
}
