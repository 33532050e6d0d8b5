package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gavel/api"
)

func ParseArgs() (Args, error) {
	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")

	// store config
	pflag.String("store-backend", "memory", "")

	// db config
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-database", "", "")
	pflag.String("db-schema", "", "")

	// redis config
	pflag.String("redis-addr", "", "")
	pflag.String("redis-password", "", "")
	pflag.Int("redis-db", 15, "")
	pflag.String("redis-key-prefix", "gavel:", "")

	// auth config
	pflag.String("auth-public-key", "", "base64 encoded ed25519 public key")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("GAVEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	publicKey, err := base64.StdEncoding.DecodeString(viper.GetString("auth-public-key"))
	if err != nil {
		return Args{}, err
	}

	// initial arguments
	return Args{
		ServerURL: viper.GetString("server-url"),
		ServerConfig: api.ServerConfig{
			Store: api.StoreConfig{
				Backend: api.StoreBackend(viper.GetString("store-backend")),
			},
			DB: api.DBConfig{
				User:     viper.GetString("db-user"),
				Password: viper.GetString("db-password"),
				Host:     viper.GetString("db-host"),
				Port:     viper.GetInt("db-port"),
				Database: viper.GetString("db-database"),
				Schema:   viper.GetString("db-schema"),
			},
			Redis: api.RedisConfig{
				Addr:      viper.GetString("redis-addr"),
				Password:  viper.GetString("redis-password"),
				DB:        viper.GetInt("redis-db"),
				KeyPrefix: viper.GetString("redis-key-prefix"),
			},
			Auth: api.AuthConfig{
				PublicKey: ed25519.PublicKey(publicKey),
			},
		},
	}, nil
}

type Args struct {
	ServerURL    string
	ServerConfig api.ServerConfig
}

func (args Args) Validate() bool {
	if args.ServerURL == "" || len(args.ServerConfig.Auth.PublicKey) != ed25519.PublicKeySize {
		return false
	}
	switch args.ServerConfig.Store.Backend {
	case api.StoreBackendMemory:
		return true
	case api.StoreBackendRedis:
		return args.ServerConfig.Redis.Addr != ""
	case api.StoreBackendPostgres:
		db := args.ServerConfig.DB
		return db.User != "" && db.Host != "" && db.Database != ""
	default:
		return false
	}
}
