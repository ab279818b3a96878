package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/odeislands/mediacore/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	logLevel = configVar[string]{
		envKey:       "MEDIACORE_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	memoryBudgetMB = configVar[int]{
		envKey:       "MEDIACORE_MEMORY_BUDGET_MB",
		flagKey:      "memory-budget-mb",
		defaultValue: 200,
	}
	cleanupIntervalSec = configVar[int]{
		envKey:       "MEDIACORE_CLEANUP_INTERVAL_SEC",
		flagKey:      "cleanup-interval-sec",
		defaultValue: 30,
	}
	maxRetries = configVar[int]{
		envKey:       "MEDIACORE_MAX_RETRIES",
		flagKey:      "max-retries",
		defaultValue: 3,
	}
	retryDelayMS = configVar[int]{
		envKey:       "MEDIACORE_RETRY_DELAY_MS",
		flagKey:      "retry-delay-ms",
		defaultValue: 2000,
	}
	defaultQuality = configVar[string]{
		envKey:       "MEDIACORE_DEFAULT_QUALITY",
		flagKey:      "default-quality",
		defaultValue: "720p",
	}
	defaultMuted = configVar[bool]{
		envKey:       "MEDIACORE_DEFAULT_MUTED",
		flagKey:      "default-muted",
		defaultValue: true,
	}
	defaultAutoplay = configVar[bool]{
		envKey:       "MEDIACORE_DEFAULT_AUTOPLAY",
		flagKey:      "default-autoplay",
		defaultValue: false,
	}
	default3DMaxFPS = configVar[int]{
		envKey:       "MEDIACORE_DEFAULT_3D_MAX_FPS",
		flagKey:      "default-3d-max-fps",
		defaultValue: 60,
	}
	mediaURL = configVar[string]{
		envKey:       "MEDIACORE_MEDIA_URL",
		flagKey:      "media-url",
		defaultValue: "",
	}
	mobile = configVar[bool]{
		envKey:       "MEDIACORE_MOBILE",
		flagKey:      "mobile",
		defaultValue: false,
	}
	connection = configVar[string]{
		envKey:       "MEDIACORE_CONNECTION",
		flagKey:      "connection",
		defaultValue: "4g",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(memoryBudgetMB.flagKey, memoryBudgetMB.defaultValue, "Global memory budget for live players in MB")
	pflag.Int(cleanupIntervalSec.flagKey, cleanupIntervalSec.defaultValue, "Seconds between memory cleanup ticks")
	pflag.Int(maxRetries.flagKey, maxRetries.defaultValue, "Maximum initialization retries per session")
	pflag.Int(retryDelayMS.flagKey, retryDelayMS.defaultValue, "Base retry backoff delay in milliseconds")
	pflag.String(defaultQuality.flagKey, defaultQuality.defaultValue, "Default video quality tier")
	pflag.Bool(defaultMuted.flagKey, defaultMuted.defaultValue, "Mute video players by default")
	pflag.Bool(defaultAutoplay.flagKey, defaultAutoplay.defaultValue, "Autoplay video players by default")
	pflag.Int(default3DMaxFPS.flagKey, default3DMaxFPS.defaultValue, "Default 3D engine FPS cap")
	pflag.String(mediaURL.flagKey, mediaURL.defaultValue, "Video URL to play on startup")
	pflag.Bool(mobile.flagKey, mobile.defaultValue, "Treat the host as a mobile device")
	pflag.String(connection.flagKey, connection.defaultValue, "Network connection class (slow-2g, 2g, 3g, 4g)")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(memoryBudgetMB.flagKey, memoryBudgetMB.envKey)
	viper.BindEnv(cleanupIntervalSec.flagKey, cleanupIntervalSec.envKey)
	viper.BindEnv(maxRetries.flagKey, maxRetries.envKey)
	viper.BindEnv(retryDelayMS.flagKey, retryDelayMS.envKey)
	viper.BindEnv(defaultQuality.flagKey, defaultQuality.envKey)
	viper.BindEnv(defaultMuted.flagKey, defaultMuted.envKey)
	viper.BindEnv(defaultAutoplay.flagKey, defaultAutoplay.envKey)
	viper.BindEnv(default3DMaxFPS.flagKey, default3DMaxFPS.envKey)
	viper.BindEnv(mediaURL.flagKey, mediaURL.envKey)
	viper.BindEnv(mobile.flagKey, mobile.envKey)
	viper.BindEnv(connection.flagKey, connection.envKey)

	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(memoryBudgetMB.flagKey, memoryBudgetMB.defaultValue)
	viper.SetDefault(cleanupIntervalSec.flagKey, cleanupIntervalSec.defaultValue)
	viper.SetDefault(maxRetries.flagKey, maxRetries.defaultValue)
	viper.SetDefault(retryDelayMS.flagKey, retryDelayMS.defaultValue)
	viper.SetDefault(defaultQuality.flagKey, defaultQuality.defaultValue)
	viper.SetDefault(defaultMuted.flagKey, defaultMuted.defaultValue)
	viper.SetDefault(defaultAutoplay.flagKey, defaultAutoplay.defaultValue)
	viper.SetDefault(default3DMaxFPS.flagKey, default3DMaxFPS.defaultValue)
	viper.SetDefault(mediaURL.flagKey, mediaURL.defaultValue)
	viper.SetDefault(mobile.flagKey, mobile.defaultValue)
	viper.SetDefault(connection.flagKey, connection.defaultValue)

	config := &app.AppConfig{
		LogLevel:           viper.GetString(logLevel.flagKey),
		MemoryBudgetMB:     viper.GetInt(memoryBudgetMB.flagKey),
		CleanupIntervalSec: viper.GetInt(cleanupIntervalSec.flagKey),
		MaxRetries:         viper.GetInt(maxRetries.flagKey),
		RetryDelayMS:       viper.GetInt(retryDelayMS.flagKey),
		DefaultQuality:     viper.GetString(defaultQuality.flagKey),
		DefaultMuted:       viper.GetBool(defaultMuted.flagKey),
		DefaultAutoplay:    viper.GetBool(defaultAutoplay.flagKey),
		Default3DMaxFPS:    viper.GetInt(default3DMaxFPS.flagKey),
		MediaURL:           viper.GetString(mediaURL.flagKey),
		Mobile:             viper.GetBool(mobile.flagKey),
		Connection:         viper.GetString(connection.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting media core with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
