package cache

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

func TestSetAndExpire(t *testing.T) {
	c := InitStorage()

	c.SetNoExp("keep", 1)
	c.Set("drop", 2, 50*time.Millisecond)

	if c.Load("keep") == nil || c.Load("drop") == nil {
		t.Fatal("values not stored")
	}

	time.Sleep(150 * time.Millisecond)

	if c.Load("keep") == nil {
		t.Fatal("no-expiration value was dropped")
	}
	if c.Load("drop") != nil {
		t.Fatal("expired value still present")
	}
}

func TestDel(t *testing.T) {
	c := InitStorage()

	k := gofakeit.UUID()
	c.SetNoExp(k, gofakeit.BuzzWord())
	c.Del(k)

	if c.Load(k) != nil {
		t.Fatal("deleted value still present")
	}
}

func TestLoadOrSet(t *testing.T) {
	c := InitStorage()

	first := c.LoadOrSet("counter", 1, time.Minute)
	if first != 1 {
		t.Fatalf("got %v", first)
	}

	second := c.LoadOrSet("counter", 99, time.Minute)
	if second != 1 {
		t.Fatalf("existing value must win, got %v", second)
	}
}
