// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package randutil hands out seeded pseudo-random generators whose seed is
// logged, so that a failing randomized test can be replayed.
package randutil

import (
	"context"
	"math/rand"
	"os"
	"strconv"

	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/log"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/timeutil"
)

// seedEnvVar overrides the seed of NewTestRand.
const seedEnvVar = "RANDOM_SEED"

// NewPseudoSeed generates a seed from the current time.
func NewPseudoSeed() int64 {
	seed := timeutil.Now().UnixNano()
	log.Infof(context.Background(), "random seed: %d", seed)
	return seed
}

// NewPseudoRand returns an instance of math/rand.Rand seeded from the
// current time, along with its seed.
func NewPseudoRand() (*rand.Rand, int64) {
	seed := NewPseudoSeed()
	return rand.New(rand.NewSource(seed)), seed
}

// NewTestRand is like NewPseudoRand, but the seed may be fixed by setting
// RANDOM_SEED in the environment.
func NewTestRand() (*rand.Rand, int64) {
	if s, ok := os.LookupEnv(seedEnvVar); ok {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.Fatalf(context.Background(), "could not parse %s=%q: %v", seedEnvVar, s, err)
		}
		log.Infof(context.Background(), "random seed from %s: %d", seedEnvVar, seed)
		return rand.New(rand.NewSource(seed)), seed
	}
	return NewPseudoRand()
}
