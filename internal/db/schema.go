package db

import (
	"context"
	"database/sql"
)

// Passengers cascade off their booking at the schema level; bookings and
// schedules are removed explicitly inside the admin delete transactions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'Customer',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reg_number VARCHAR(50) NOT NULL,
		capacity INT NOT NULL,
		bus_type VARCHAR(50) NOT NULL,
		UNIQUE KEY uniq_buses_reg (reg_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		source VARCHAR(100) NOT NULL,
		destination VARCHAR(100) NOT NULL,
		KEY idx_routes_src_dst (source, destination)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		bus_id BIGINT NOT NULL,
		route_id BIGINT NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		fare DECIMAL(10,2) NOT NULL,
		available_seats INT NOT NULL,
		KEY idx_schedules_bus (bus_id),
		KEY idx_schedules_route (route_id),
		CONSTRAINT fk_schedules_bus FOREIGN KEY (bus_id) REFERENCES buses(id),
		CONSTRAINT fk_schedules_route FOREIGN KEY (route_id) REFERENCES routes(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		schedule_id BIGINT NOT NULL,
		num_seats INT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Confirmed',
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_schedule (schedule_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_bookings_schedule FOREIGN KEY (schedule_id) REFERENCES schedules(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		age INT NOT NULL,
		gender VARCHAR(20) NOT NULL,
		seat_number INT NOT NULL,
		KEY idx_passengers_booking (booking_id),
		CONSTRAINT fk_passengers_booking FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates all tables when missing. Statements are ordered so
// that foreign keys always reference existing tables.
func EnsureSchema(ctx context.Context, d *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
