// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"treefnio/internal/core/id"
	"treefnio/internal/infrastructure/storage/postgres"
	"treefnio/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed admin user
	if _, err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@treefnio.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	// Create admin user
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, email_verified, email_verified_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, true, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	// Assign admin role
	var adminRoleID id.ID
	err = pool.Pool.QueryRow(ctx,
		`SELECT id FROM roles WHERE code = 'admin'`,
	).Scan(&adminRoleID)
	if err != nil {
		log.Warnw("admin role not found, skipping role assignment", "error", err)
	} else {
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id, granted_by)
			VALUES ($1, $2, NULL)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, adminRoleID)
		if err != nil {
			log.Warnw("failed to assign admin role", "error", err)
		}
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Seed Units
	// Capture IDs so materials can reference them.
	type unitSeed struct {
		name   string
		symbol string
		uType  string // piece, weight, volume
	}

	units := []unitSeed{
		{"عدد", "عدد", "piece"},
		{"کیلوگرم", "کیلوگرم", "weight"},
		{"گرم", "گرم", "weight"},
		{"لیتر", "لیتر", "volume"},
		{"پرس", "پرس", "piece"},
	}

	// Map symbol -> UUID for material references
	unitIDs := make(map[string]id.ID)

	for i, u := range units {
		uid := id.New()
		code := fmt.Sprintf("UN-%03d", i+1)
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_units (id, code, name, symbol, type, is_base, conversion_factor, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, true, 1, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, uid, code, u.name, u.symbol, u.uType)

		if err != nil {
			log.Warnw("failed to seed unit", "name", u.name, "error", err)
			continue
		}

		// If inserted, use new ID. If conflict, fetch existing ID.
		if commandTag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_units
				WHERE code = $1 AND deletion_mark = FALSE
			`, code).Scan(&uid)
			if err != nil {
				log.Warnw("failed to fetch existing unit id", "code", code, "error", err)
				continue
			}
		}

		unitIDs[u.symbol] = uid
	}

	// 2. Seed Departments
	departments := []struct {
		name      string
		sortOrder int
	}{
		{"آشپزخانه", 1},
		{"کافه", 2},
		{"فست فود", 3},
		{"قنادی", 4},
	}

	departmentIDs := make(map[string]id.ID)
	for i, d := range departments {
		did := id.New()
		code := fmt.Sprintf("DEP-%03d", i+1)
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_departments (id, code, name, sort_order, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, did, code, d.name, d.sortOrder)
		if err != nil {
			log.Warnw("failed to seed department", "name", d.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_departments WHERE code = $1 AND deletion_mark = FALSE
			`, code).Scan(&did)
			if err != nil {
				log.Warnw("failed to fetch existing department id", "code", code, "error", err)
				continue
			}
		}
		departmentIDs[d.name] = did
	}

	// 3. Seed Production Segments
	segments := []struct {
		name      string
		sortOrder int
	}{
		{"کباب‌ها", 1},
		{"خورش‌ها", 2},
		{"نوشیدنی‌ها", 3},
		{"پیش غذا", 4},
	}

	segmentIDs := make(map[string]id.ID)
	for i, s := range segments {
		sid := id.New()
		code := fmt.Sprintf("SEG-%03d", i+1)
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_segments (id, code, name, sort_order, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, sid, code, s.name, s.sortOrder)
		if err != nil {
			log.Warnw("failed to seed segment", "name", s.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_segments WHERE code = $1 AND deletion_mark = FALSE
			`, code).Scan(&sid)
			if err != nil {
				log.Warnw("failed to fetch existing segment id", "code", code, "error", err)
				continue
			}
		}
		segmentIDs[s.name] = sid
	}

	// 4. Seed Materials
	materials := []struct {
		name       string
		unitSymbol string
		price      string
		minStock   int64
	}{
		{"برنج ایرانی", "کیلوگرم", "850000", 200000},
		{"گوشت چرخ کرده", "کیلوگرم", "4200000", 100000},
		{"سینه مرغ", "کیلوگرم", "1900000", 150000},
		{"روغن مایع", "لیتر", "980000", 50000},
		{"گوجه فرنگی", "کیلوگرم", "250000", 100000},
		{"نان لواش", "عدد", "30000", 500000},
	}

	for i, m := range materials {
		mid := id.New()
		code := fmt.Sprintf("MAT-%03d", i+1)

		var unitIDValue interface{}
		if uid, ok := unitIDs[m.unitSymbol]; ok {
			unitIDValue = uid
		}

		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_materials (id, code, name, unit_id, price, min_stock, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, mid, code, m.name, unitIDValue, m.price, m.minStock)
		if err != nil {
			log.Warnw("failed to seed material", "name", m.name, "error", err)
		}
	}

	// 5. Seed Products
	products := []struct {
		name       string
		department string
		segment    string
		salePrice  string
	}{
		{"چلو کباب کوبیده", "آشپزخانه", "کباب‌ها", "1850000"},
		{"جوجه کباب", "آشپزخانه", "کباب‌ها", "1650000"},
		{"قورمه سبزی", "آشپزخانه", "خورش‌ها", "1400000"},
		{"قیمه بادمجان", "آشپزخانه", "خورش‌ها", "1350000"},
		{"دوغ محلی", "کافه", "نوشیدنی‌ها", "250000"},
		{"سالاد شیرازی", "آشپزخانه", "پیش غذا", "450000"},
	}

	for i, p := range products {
		prodID := id.New()
		code := fmt.Sprintf("PRD-%05d", i+1)

		var depIDValue, segIDValue interface{}
		if did, ok := departmentIDs[p.department]; ok {
			depIDValue = did
		}
		if sid, ok := segmentIDs[p.segment]; ok {
			segIDValue = sid
		}

		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, department_id, segment_id, sale_price, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, prodID, code, p.name, depIDValue, segIDValue, p.salePrice)

		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
