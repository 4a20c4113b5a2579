package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CSCTC_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "CSCTC_SAVE_INTERVAL")
	viper.BindEnv("game.packSize", "CSCTC_PACK_SIZE")
	viper.BindEnv("game.cardsPerPack", "CSCTC_CARDS_PER_PACK")
	viper.BindEnv("players.url", "CSCTC_PLAYERS_URL")
	viper.BindEnv("cache.enabled", "CSCTC_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CSCTC_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CscTradingCards"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
