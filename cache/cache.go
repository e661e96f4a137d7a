/*
Package cache provides a result cache for computed debt plans.

PURPOSE:
  Plan simulation is pure, so identical inputs always produce identical
  schedules — a cache in front of the planner is free correctness-wise
  and saves recomputing long schedules for repeated requests. The cache
  stores serialized responses keyed by a fingerprint of the validated
  plan input.

IMPLEMENTATIONS:
  - Memory: process-local map, used in tests and single-node dev
  - Redis: shared cache with TTL for multi-instance deployments
*/
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Raimal54/chai-wallet/debt"
)

// Cache stores serialized plan responses by fingerprint. Implementations
// must be safe for concurrent use. A miss is (_, false), never an error:
// cache failures degrade to recomputation.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// PlanKey fingerprints a plan deterministically. Loans hash in input
// order: the engine's tie-breaks depend on it, so two plans differing
// only in loan order are distinct cache entries.
func PlanKey(plan debt.Plan) string {
	h := sha256.New()
	writeDecimal(h, plan.Income)
	writeDecimal(h, plan.Expenses)
	for _, l := range plan.Loans {
		fmt.Fprintf(h, "%s|", l.Name)
		writeDecimal(h, l.Balance)
		writeDecimal(h, l.InterestRate)
		writeDecimal(h, l.MinimumPayment)
	}
	return "debtplan:" + hex.EncodeToString(h.Sum(nil))
}

func writeDecimal(h interface{ Write([]byte) (int, error) }, d decimal.Decimal) {
	fmt.Fprintf(h, "%s;", d.String())
}
