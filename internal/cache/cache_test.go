package cache

import (
	"slices"
	"strconv"
	"testing"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	const n = 4
	c := NewLRU[string, int](n)
	for i := range n {
		c.Insert(strconv.Itoa(i), i)
	}
	// Touch "0" so that "1" becomes the oldest.
	if _, ok := c.Find("0"); !ok {
		t.Fatal("Find(0) missed")
	}

	var evicted []string
	c.OnEvict = func(k string, _ int) { evicted = append(evicted, k) }
	c.Insert("new", 99)

	if !slices.Equal(evicted, []string{"1"}) {
		t.Errorf("evicted = %v, want [1]", evicted)
	}
	if c.Len() != n {
		t.Errorf("Len = %d, want %d", c.Len(), n)
	}
	for _, k := range []string{"0", "2", "3", "new"} {
		if !c.Contains(k) {
			t.Errorf("key %q missing", k)
		}
	}
}

func TestLRUCapacityPlusOne(t *testing.T) {
	c := NewLRU[int, int](3)
	for i := range 4 {
		c.Insert(i, i*10)
	}
	if c.Contains(0) {
		t.Error("oldest key survived")
	}
	if got := c.Keys(); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("Keys = %v, want [3 2 1]", got)
	}
}

func TestLRUInsertKeepsExisting(t *testing.T) {
	c := NewLRU[string, int](2)
	if !c.Insert("a", 1) {
		t.Fatal("first Insert returned false")
	}
	if c.Insert("a", 2) {
		t.Error("second Insert returned true")
	}
	if v, _ := c.Find("a"); v != 1 {
		t.Errorf("value = %d, want 1", v)
	}
	c.InsertOrUpdate("a", 3)
	if v, _ := c.Find("a"); v != 3 {
		t.Errorf("value after update = %d, want 3", v)
	}
}

func TestLRURemoveAndPurge(t *testing.T) {
	c := NewLRU[int, string](4)
	c.Insert(1, "one")
	c.Insert(2, "two")

	if !c.Remove(1) || c.Remove(1) {
		t.Error("Remove did not report presence correctly")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	c.Purge()
	if c.Len() != 0 || len(c.Keys()) != 0 {
		t.Error("Purge left entries")
	}
	c.Insert(3, "three")
	if v, ok := c.Find(3); !ok || v != "three" {
		t.Error("cache unusable after Purge")
	}
}

func TestLRUFindOrCreate(t *testing.T) {
	c := NewLRU[string, int](2)
	calls := 0
	create := func() int { calls++; return 7 }
	for range 3 {
		if v := c.FindOrCreate("k", create); v != 7 {
			t.Fatalf("FindOrCreate = %d", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestNewLRUMinimumCapacity(t *testing.T) {
	c := NewLRU[int, int](0)
	c.Insert(1, 1)
	c.Insert(2, 2)
	if c.Capacity() != 1 || c.Len() != 1 || !c.Contains(2) {
		t.Errorf("capacity %d len %d", c.Capacity(), c.Len())
	}
}
