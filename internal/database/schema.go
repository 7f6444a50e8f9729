package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table, in dependency order.  All
// statements are idempotent so EnsureSchema can run on every start.
//
// booking_time and checkout_time are fixed-layout strings rather than
// DATETIME: the pricing layer owns parsing and must be able to detect
// a malformed stored value instead of having the driver coerce it.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(20)  NOT NULL,
		email         VARCHAR(120) NOT NULL,
		phone         VARCHAR(10)  NOT NULL,
		vehicle_number VARCHAR(15) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          ENUM('USER','ADMIN') NOT NULL DEFAULT 'USER',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY ix_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS slots (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		slot_number VARCHAR(10) NOT NULL,
		slot_type   VARCHAR(30) NOT NULL DEFAULT 'Regular',
		status      ENUM('Available','Occupied') NOT NULL DEFAULT 'Available',
		floor       INT UNSIGNED NOT NULL DEFAULT 1,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_slots_number (slot_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id           BIGINT UNSIGNED NOT NULL,
		slot_id           BIGINT UNSIGNED NOT NULL,
		vehicle_number    VARCHAR(15) NOT NULL,
		booking_time      VARCHAR(19) NOT NULL,
		checkout_time     VARCHAR(19) NULL,
		status            ENUM('Active','Completed') NOT NULL DEFAULT 'Active',
		package_type      VARCHAR(40) NOT NULL,
		package_cost      DECIMAL(10,2) NOT NULL,
		expected_duration DECIMAL(8,2) NOT NULL,
		actual_cost       DECIMAL(10,2) NULL,
		KEY ix_bookings_user_status (user_id, status),
		KEY ix_bookings_slot_status (slot_id, status),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_slot FOREIGN KEY (slot_id) REFERENCES slots (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  Safe to call on every
// start; existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
