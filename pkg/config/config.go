package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Assistant AssistantConfig
	Points    PointsConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// AssistantConfig 是自動助理的設定
// APIKey 留空時助理仍會運作，但只會回覆預設罐頭訊息
type AssistantConfig struct {
	Handle         string // 保留給助理的帳號代稱
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// PointsConfig 是積分規則的設定
type PointsConfig struct {
	LikeCredit   int    // 被按讚一次獲得的積分
	CreditedType string // 會觸發積分的回應類型
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("jwt.expirehours", 240)
	viper.SetDefault("assistant.handle", "helper")
	viper.SetDefault("assistant.model", "gemini-2.0-flash")
	viper.SetDefault("assistant.timeoutseconds", 15)
	viper.SetDefault("points.likecredit", 5)
	viper.SetDefault("points.creditedtype", "like")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
