package database

// Setup creates the storefront tables if they do not exist yet.
func (db *DB) Setup() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    username VARCHAR(100) NOT NULL,
		    email VARCHAR(255) NOT NULL,
		    password VARCHAR(100) NOT NULL,
		    role ENUM('user', 'admin') NOT NULL DEFAULT 'user',
		    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		    UNIQUE KEY uk_username (username),
		    UNIQUE KEY uk_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS products (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    title VARCHAR(255) NOT NULL,
		    description TEXT NOT NULL,
		    price DECIMAL(10,2) NOT NULL,
		    image1 VARCHAR(512) NOT NULL,
		    image2 VARCHAR(512),
		    category VARCHAR(100) NOT NULL,
		    material VARCHAR(100),
		    type VARCHAR(100),
		    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		    INDEX idx_category (category),
		    INDEX idx_material (material),
		    INDEX idx_type (type)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS orders (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    user_id BIGINT NOT NULL,
		    total_amount DECIMAL(10,2) NOT NULL,
		    status ENUM('pendiente', 'procesando', 'enviado', 'entregado', 'cancelado') NOT NULL DEFAULT 'pendiente',
		    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		    FOREIGN KEY (user_id) REFERENCES users(id),
		    INDEX idx_user_id (user_id),
		    INDEX idx_status (status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS order_items (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    order_id BIGINT NOT NULL,
		    product_id BIGINT,
		    quantity INT NOT NULL,
		    price DECIMAL(10,2) NOT NULL,
		    FOREIGN KEY (order_id) REFERENCES orders(id),
		    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL,
		    INDEX idx_order_id (order_id),
		    INDEX idx_product_id (product_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// Drop removes all storefront tables. Used by the setup command with
// --drop-first.
func (db *DB) Drop() error {
	queries := []string{
		"DROP TABLE IF EXISTS order_items",
		"DROP TABLE IF EXISTS orders",
		"DROP TABLE IF EXISTS products",
		"DROP TABLE IF EXISTS users",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
