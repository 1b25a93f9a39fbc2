package output

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dnsweep/dnsweep/record"
)

// RecordRow is one resolved record. Table name: dns_records
type RecordRow struct {
	ID        uint      `gorm:"primaryKey"`
	Type      string    `gorm:"type:text;not null"`
	Name      string    `gorm:"type:text;not null"`
	TTL       *uint32   `gorm:"column:ttl"`
	CreatedAt time.Time `gorm:"not null"`

	Data []RecordDataRow `gorm:"foreignKey:RecordID"`
}

func (RecordRow) TableName() string { return "dns_records" }

// RecordDataRow is one type-specific field of a record, key/value per
// row. Table name: record_data
type RecordDataRow struct {
	ID       uint   `gorm:"primaryKey"`
	RecordID uint   `gorm:"index;not null"`
	Key      string `gorm:"column:key;type:text;not null"`
	Value    string `gorm:"type:text"`
}

func (RecordDataRow) TableName() string { return "record_data" }

// SQLiteWriter persists the collection as relational rows: one parent
// row per record plus child key/value rows for its payload fields.
type SQLiteWriter struct {
	Path string
}

func (w *SQLiteWriter) Write(records []record.Record) error {
	db, err := gorm.Open(sqlite.Open(w.Path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return fmt.Errorf("opening SQLite database: %w", err)
	}
	if err := db.AutoMigrate(&RecordRow{}, &RecordDataRow{}); err != nil {
		return fmt.Errorf("migrating SQLite schema: %w", err)
	}

	rows := make([]RecordRow, 0, len(records))
	for _, r := range records {
		row := RecordRow{
			Type: string(r.Kind),
			Name: r.Name,
			TTL:  r.TTL,
		}
		for _, f := range r.Data.Fields() {
			row.Data = append(row.Data, RecordDataRow{Key: f.Key, Value: f.Value})
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("inserting records: %w", err)
	}
	return nil
}
