// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import "fmt"

// Key identifies what a listener is registered for: either a specific
// event key or the wildcard. The zero Key is Specific of K's zero value.
type Key[K comparable] struct {
	value    K
	wildcard bool
}

// Specific returns a key matching only k.
func Specific[K comparable](k K) Key[K] {
	return Key[K]{value: k}
}

// Wildcard returns the key matching every emitted key.
func Wildcard[K comparable]() Key[K] {
	return Key[K]{wildcard: true}
}

// IsWildcard reports whether k is the wildcard.
func (k Key[K]) IsWildcard() bool {
	return k.wildcard
}

// Value returns the specific key value. ok is false for the wildcard.
func (k Key[K]) Value() (value K, ok bool) {
	return k.value, !k.wildcard
}

// Matches reports whether an emission of key reaches a listener registered under k.
func (k Key[K]) Matches(key K) bool {
	return k.wildcard || k.value == key
}

// Is reports whether k is the specific key (never true for the wildcard).
func (k Key[K]) Is(key K) bool {
	return !k.wildcard && k.value == key
}

func (k Key[K]) String() string {
	if k.wildcard {
		return "*"
	}
	return fmt.Sprint(k.value)
}
