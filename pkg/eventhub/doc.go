// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package eventhub provides a small synchronous publish/subscribe hub.
//
// Handlers are registered against a key (or the wildcard) and are invoked,
// in registration order, on the goroutine that calls Emit:
//
//	hub := eventhub.New[string]()
//	greet := eventhub.NewHandler(func(args ...any) error {
//		fmt.Println("hello", args[0])
//		return nil
//	})
//	if err := hub.On("greet", greet); err != nil {
//		return err
//	}
//	_ = hub.Emit("greet", "world")
//
// Emission is fail-fast: the first handler error is returned unmodified and
// the remaining handlers for that call are skipped. Panics are not recovered.
//
// Removal keeps two behaviours. RemovalLegacy (the default) treats
// Remove(key, nil) as "drop key and every wildcard listener" and
// Remove(key, h) as "drop every listener using h, whatever its key".
// RemovalScoped restricts both forms to listeners registered under key.
package eventhub
