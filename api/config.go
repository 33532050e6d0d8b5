package api

import "crypto/ed25519"

// StoreBackend 指定耐久儲存層的實作
type StoreBackend string

const (
	StoreBackendMemory   StoreBackend = "memory"
	StoreBackendRedis    StoreBackend = "redis"
	StoreBackendPostgres StoreBackend = "postgres"
)

type ServerConfig struct {
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type StoreConfig struct {
	Backend StoreBackend
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
	Schema   string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type AuthConfig struct {
	// PublicKey 用於驗證存取權杖的簽章
	// 權杖的發放由外部的身分提供者負責
	PublicKey ed25519.PublicKey
}
