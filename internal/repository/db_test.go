package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestWhereAlwaysScopesByTenant(t *testing.T) {
	w := tenantScope("t1")

	assert.Equal(t, "tenant_id=$1", w.String())
	assert.Equal(t, []any{"t1"}, w.args)
}

func TestWhereEqAndSearch(t *testing.T) {
	w := tenantScope("t1")
	w.eq("account_id", strPtr("a1"))
	w.eq("stage", nil)
	w.search(strPtr("  Acme "), "name", "website")

	assert.Equal(t, "tenant_id=$1 AND account_id=$2 AND (LOWER(name) LIKE $3 OR LOWER(website) LIKE $3)", w.String())
	assert.Equal(t, []any{"t1", "a1", "%acme%"}, w.args)
}

func TestWhereSearchIgnoresBlank(t *testing.T) {
	w := tenantScope("t1")
	w.search(strPtr("   "), "name")

	assert.Equal(t, "tenant_id=$1", w.String())
}

func TestPageBounds(t *testing.T) {
	assert.Equal(t, "LIMIT 100 OFFSET 0", page(ListFilter{}))
	assert.Equal(t, "LIMIT 500 OFFSET 0", page(ListFilter{Limit: 10000, Offset: -3}))
	assert.Equal(t, "LIMIT 20 OFFSET 40", page(ListFilter{Limit: 20, Offset: 40}))
}
