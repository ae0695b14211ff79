package repositories

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableDef pulls one CREATE TABLE block out of the init migration so the
// queries in this package can be checked against the columns that actually
// exist on a fresh deploy.
func tableDef(t *testing.T, table string) string {
	t.Helper()

	data, err := os.ReadFile("../database/migration/000001_init.up.sql")
	require.NoError(t, err)

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(string(data), marker)
	require.GreaterOrEqual(t, start, 0, "table %s missing from migration", table)

	rest := string(data)[start:]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}

func TestMigrationCoversProfileQueries(t *testing.T) {
	def := tableDef(t, "user_profiles")

	// Columns written by CreateProfile and read by GetUserWithProfile.
	for _, col := range []string{"user_id", "full_name", "phone", "address", "created_at", "updated_at"} {
		assert.Contains(t, def, col, "user_profiles.%s", col)
	}
}

func TestMigrationCoversCategoryQueries(t *testing.T) {
	def := tableDef(t, "categories")

	for _, col := range []string{"name", "is_active", "created_at"} {
		assert.Contains(t, def, col, "categories.%s", col)
	}
}

func TestMigrationCoversOrderQueries(t *testing.T) {
	def := tableDef(t, "orders")

	for _, col := range []string{
		"order_number", "user_id", "status", "payment_status", "payment_method",
		"subtotal", "shipping_cost", "cod_fee", "total",
		"full_name", "email", "phone", "address", "city", "state", "pincode", "notes",
		"razorpay_order_id", "razorpay_payment_id", "razorpay_signature",
	} {
		assert.Contains(t, def, col, "orders.%s", col)
	}
}
