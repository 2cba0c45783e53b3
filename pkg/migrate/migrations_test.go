package migrate

import (
	"os"
	"strings"
	"testing"
)

const migrationsDir = "migrations"

func TestMigrationsDirValidates(t *testing.T) {
	if err := ValidateDir(migrationsDir); err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
}

func TestInitSchemaCoversCoreTables(t *testing.T) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var initSQL string
	for _, e := range entries {
		if strings.Contains(e.Name(), "init_schema") {
			b, err := os.ReadFile(migrationsDir + "/" + e.Name())
			if err != nil {
				t.Fatalf("read init schema: %v", err)
			}
			initSQL = string(b)
		}
	}
	if initSQL == "" {
		t.Fatal("init_schema migration not found")
	}

	for _, table := range []string{
		"users", "brands", "categories", "cities",
		"ups_products", "inverters", "batteries",
		"solar_pv_modules", "solar_pcus", "solar_street_lights",
		"carts", "cart_items", "orders", "order_items",
		"payment_intents", "reviews", "leads",
	} {
		if !strings.Contains(initSQL, "CREATE TABLE "+table+" (") {
			t.Errorf("init schema is missing table %s", table)
		}
		if !strings.Contains(initSQL, "DROP TABLE IF EXISTS "+table+";") {
			t.Errorf("init schema is missing rollback for table %s", table)
		}
	}

	for _, index := range []string{
		"uq_users_email", "uq_carts_user", "uq_cart_line",
		"uq_orders_number", "uq_orders_gateway_payment",
		"uq_payment_intents_gateway_order", "uq_reviews_user_product",
	} {
		if !strings.Contains(initSQL, index) {
			t.Errorf("init schema is missing index %s", index)
		}
	}
}
