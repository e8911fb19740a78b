package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/rolltrack/rolltrack/internal"
	"github.com/rolltrack/rolltrack/internal/config"
	"github.com/rolltrack/rolltrack/internal/logging"
	"github.com/rolltrack/rolltrack/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "main-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	adminUsername := os.Getenv("ROLLTRACK_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("ROLLTRACK_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Errorf("admin username and password not set. use ROLLTRACK_ADMIN_USERNAME and ROLLTRACK_ADMIN_PASSWORD_HASH")
		adminUsername = "todo"
		adminPasswordHash = "$$2a$$14$$gPDY7P8qGduPi.OKoPKzM.N/MTyZpP.q2tmbprdHH.1jyw7fK3KfW"
	}

	whoopClientID := os.Getenv("ROLLTRACK_WHOOP_CLIENT_ID")
	if whoopClientID == "" {
		log.Errorf("whoop client id not set. use ROLLTRACK_WHOOP_CLIENT_ID")
	}
	whoopClientSecret := os.Getenv("ROLLTRACK_WHOOP_CLIENT_SECRET")
	if whoopClientSecret == "" {
		log.Errorf("whoop client secret not set. use ROLLTRACK_WHOOP_CLIENT_SECRET")
	}

	openAIApiKey := os.Getenv("ROLLTRACK_OPENAI_API_KEY")
	if openAIApiKey == "" {
		log.Errorf("openai api key not set, voice note transcription will fail. use ROLLTRACK_OPENAI_API_KEY")
	}

	iosAppSecret := os.Getenv("ROLLTRACK_IOS_APP_SECRET")
	if iosAppSecret == "" {
		log.Errorf("ios app secret not set. use ROLLTRACK_IOS_APP_SECRET")
	}

	redisPassword := os.Getenv("ROLLTRACK_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use ROLLTRACK_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			WhoopClientID:           whoopClientID,
			WhoopClientSecret:       whoopClientSecret,
			OpenAIApiKey:            openAIApiKey,
			IOSAppSecret:            iosAppSecret,
			VersionInfo:             versionInfo,
			AdminUsername:           adminUsername,
			AdminPasswordHash:       adminPasswordHash,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
