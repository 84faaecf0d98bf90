package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeFlags(t *testing.T) {
	cmd := makeServeCMD()

	names := map[string]bool{}
	for _, f := range cmd.Flags {
		names[f.GetName()] = true
	}
	for _, n := range []string{
		"host", "port",
		"probe-port",
		"use-pprof", "pprof-port",
		"omdb-api-key",
		"redis-host", "redis-port",
		"use-catalog-cache", "catalog-cache-ttl",
	} {
		assert.True(t, names[n], n)
	}
}

func TestLookupFlags(t *testing.T) {
	cmd := makeLookupCMD()

	names := map[string]bool{}
	for _, f := range cmd.Flags {
		names[f.GetName()] = true
	}
	for _, n := range []string{"id", "omdb-api-key", "redis-host", "use-catalog-cache"} {
		assert.True(t, names[n], n)
	}
}
