package cache

import (
	"errors"
	"sync"
)

var ErrKeyExists = errors.New("key already exists in cache")

// Cache is a weight bounded, least recently used cache
type Cache interface {
	// Insert adds a new item, evicting the least recently used items until
	// the total weight fits the budget. ErrKeyExists is returned if key is
	// already cached.
	Insert(key string, value interface{}, weight int) error

	// Retrieve gets an item by key and marks it as most recently used
	Retrieve(key string) (interface{}, bool)

	// GetWeight returns the current total weight of cached items
	GetWeight() int

	// GetBudget returns the weight budget
	GetBudget() int

	// Clear removes every item
	Clear()
}

type node struct {
	next   *node
	prev   *node
	key    string
	value  interface{}
	weight int
}

type cache struct {
	mu     sync.Mutex
	head   *node // most recently used
	tail   *node // least recently used
	lookup map[string]*node
	weight int
	budget int
}

// New returns a new cache with the provided weight budget
func New(budget int) Cache {
	return &cache{
		lookup: make(map[string]*node),
		budget: budget,
	}
}

// Insert implements Cache.Insert
func (c *cache) Insert(key string, value interface{}, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup[key]; ok {
		return ErrKeyExists
	}

	n := &node{
		key:    key,
		value:  value,
		weight: weight,
	}
	c.pushFront(n)
	c.lookup[key] = n
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		delete(c.lookup, evicted.key)
		c.weight -= evicted.weight
	}

	return nil
}

// Retrieve implements Cache.Retrieve
func (c *cache) Retrieve(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.lookup[key]
	if !ok {
		return nil, false
	}

	if n != c.head {
		c.unlink(n)
		c.pushFront(n)
	}
	return n.value, true
}

// GetWeight implements Cache.GetWeight
func (c *cache) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.weight
}

// GetBudget implements Cache.GetBudget
func (c *cache) GetBudget() int {
	return c.budget
}

// Clear implements Cache.Clear
func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*node)
	c.weight = 0
}

func (c *cache) pushFront(n *node) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *cache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.next = nil
	n.prev = nil
}
