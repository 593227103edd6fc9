package main

import (
	"context"
	"flag"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"github.com/laurafitzgerald/jwks-cache-go/jwkscache"
	"github.com/laurafitzgerald/jwks-cache-go/jwkscache/ssmstore"
)

func main() {
	configPath := flag.String("config", "jwks.yaml", "path to the realm configuration file")
	realmName := flag.String("realm", "", "realm to load keys for")
	ssmPrefix := flag.String("ssm-prefix", "", "persist the cache as SSM SecureString parameters under this prefix (in-memory when empty)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := jwkscache.LoadConfigFile(*configPath)
	if err != nil {
		logger.Fatal("cannot load configuration", zap.Error(err))
	}

	realm := cfg.Realm(*realmName)
	if realm == nil {
		logger.Fatal("realm is not configured", zap.String("realm", *realmName))
	}

	var store jwkscache.SecureStore = jwkscache.NewMemStore()
	if *ssmPrefix != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logger.Fatal("cannot load AWS configuration", zap.Error(err))
		}
		store = ssmstore.New(ssm.NewFromConfig(awsCfg), *ssmPrefix)
	}

	manager := jwkscache.NewManager(
		store,
		jwkscache.NewHTTPTransport(cfg.RequestTimeout.Duration),
		cfg.Fetch,
		logger,
	)

	// A load on a warm cache returns immediately; a cold cache returns
	// nothing and a forced fetch runs in the background.
	if keySet := manager.Load(context.Background(), *realm); keySet != nil {
		printKeys(logger, keySet)
		return
	}
	logger.Info("no cached key set yet, fetching")

	done := make(chan struct{})
	manager.Fetch(context.Background(), *realm, func(keySet *jwkscache.KeySet, err error) {
		defer close(done)
		if err != nil {
			logger.Error("fetch failed", zap.Error(err))
			return
		}
		printKeys(logger, keySet)
	})

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Fatal("timed out waiting for the key set")
	}
}

func printKeys(logger *zap.Logger, keySet *jwkscache.KeySet) {
	for _, key := range keySet.Keys {
		logger.Info("signing key",
			zap.String("kid", key.Kid),
			zap.String("alg", key.Alg),
			zap.String("use", key.Use))
	}
}
