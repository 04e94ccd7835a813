package database

import (
	"fmt"

	"assetsnapshot/internal/logger"

	"gorm.io/gorm"
)

// rewriteLegacySchema migrates a database created before banks had sub-accounts.
// In that layout the accounts table carried owner_id and bank metadata directly,
// with balance logs attached to it. Each legacy account becomes a bank holding a
// single "Default Account" sub-account, and its logs are repointed.
func (m *Manager) rewriteLegacySchema() error {
	var count int64
	if err := m.db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'accounts'",
	).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	type columnInfo struct {
		Name string
	}
	var cols []columnInfo
	if err := m.db.Raw("PRAGMA table_info(accounts)").Scan(&cols).Error; err != nil {
		return err
	}
	legacy := false
	for _, c := range cols {
		if c.Name == "owner_id" {
			legacy = true
			break
		}
	}
	if !legacy {
		return nil
	}

	logger.Get().Info("Legacy single-account schema detected, migrating to multi-account schema...")

	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("ALTER TABLE accounts RENAME TO old_accounts_migration").Error; err != nil {
			return err
		}

		if err := tx.Exec(`
			CREATE TABLE banks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				owner_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				bank_name TEXT,
				institution_type TEXT,
				logo_color TEXT DEFAULT '#3b82f6',
				country TEXT DEFAULT 'USA',
				last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE
			)`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`
			CREATE TABLE accounts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				bank_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				type TEXT NOT NULL DEFAULT 'Bank',
				account_number TEXT,
				FOREIGN KEY (bank_id) REFERENCES banks(id) ON DELETE CASCADE
			)`).Error; err != nil {
			return err
		}

		type legacyAccount struct {
			ID            uint
			OwnerID       uint
			Name          string
			BankName      string
			Type          string
			AccountNumber string
			LogoColor     string
			Country       string
			LastUpdated   string
		}
		var rows []legacyAccount
		if err := tx.Raw("SELECT * FROM old_accounts_migration").Scan(&rows).Error; err != nil {
			return err
		}

		for _, row := range rows {
			var bankID uint
			if err := tx.Raw(`
				INSERT INTO banks (owner_id, name, bank_name, logo_color, country, last_updated)
				VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
				row.OwnerID, row.Name, row.BankName, row.LogoColor, row.Country, row.LastUpdated,
			).Scan(&bankID).Error; err != nil {
				return err
			}

			accountType := row.Type
			if accountType == "" {
				accountType = "Bank"
			}
			var accountID uint
			if err := tx.Raw(`
				INSERT INTO accounts (bank_id, name, type, account_number)
				VALUES (?, 'Default Account', ?, ?) RETURNING id`,
				bankID, accountType, row.AccountNumber,
			).Scan(&accountID).Error; err != nil {
				return err
			}

			if err := tx.Exec(
				"UPDATE balance_logs SET account_id = ? WHERE account_id = ?",
				accountID, row.ID,
			).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DROP TABLE old_accounts_migration").Error; err != nil {
			return err
		}

		logger.Get().Info(fmt.Sprintf("Legacy schema migration completed, %d banks rewritten", len(rows)))
		return nil
	})
}
