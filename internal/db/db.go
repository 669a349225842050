package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/config"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.StaffUser{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	for _, stmt := range ChangeTriggerSQL(cfg.PGNotifyChannel) {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("failed to install change trigger: %v", err)
		}
	}

	return db
}

// ChangeTriggerSQL publishes every row change of appointments on channel
// as {"eventType", "table", "new", "old"}.
func ChangeTriggerSQL(channel string) []string {
	return []string{
		fmt.Sprintf(`
CREATE OR REPLACE FUNCTION notify_appointments_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(%s, json_build_object(
		'eventType', TG_OP,
		'table', TG_TABLE_NAME,
		'new', CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
		'old', CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`, quoteLiteral(channel)),
		`DROP TRIGGER IF EXISTS appointments_change ON appointments`,
		`CREATE TRIGGER appointments_change
	AFTER INSERT OR UPDATE OR DELETE ON appointments
	FOR EACH ROW EXECUTE FUNCTION notify_appointments_change()`,
	}
}

func quoteLiteral(s string) string {
	out := []byte{'\''}
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}
