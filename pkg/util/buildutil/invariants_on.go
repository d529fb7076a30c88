// Copyright 2023 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

//go:build invariants || race

package buildutil

// Invariants is enabled when built with the invariants or race build tags. It
// makes every container re-verify its structure after each mutation and panic
// with an assertion failure when it is broken.
const Invariants = true
