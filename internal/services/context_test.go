package services

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithCandidate(ctx, "/inbox/Some Book")
	ctx = WithASIN(ctx, "B002V5BP2C")
	ctx = WithRunID(ctx, "run-1")

	if v, ok := CandidateFromContext(ctx); !ok || v != "/inbox/Some Book" {
		t.Fatalf("candidate = %q ok=%v", v, ok)
	}
	if v, ok := ASINFromContext(ctx); !ok || v != "B002V5BP2C" {
		t.Fatalf("asin = %q ok=%v", v, ok)
	}
	if v, ok := RunIDFromContext(ctx); !ok || v != "run-1" {
		t.Fatalf("run id = %q ok=%v", v, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := WithASIN(context.Background(), "")
	if _, ok := ASINFromContext(ctx); ok {
		t.Fatal("empty asin should not be stored")
	}
}
