package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayCfg 支付网关商户配置。
// PayKey 用于下单与 JSAPI 签名，NotifyKey 用于回调验签，两把密钥独立配置。
type GatewayCfg struct {
	AppID          string        `mapstructure:"appid"`
	MchID          string        `mapstructure:"mchId"`
	PayKey         string        `mapstructure:"payKey"`
	NotifyKey      string        `mapstructure:"notifyKey"`
	PlatformAppID  string        `mapstructure:"platformAppid"`
	PlatformSecret string        `mapstructure:"platformSecret"`
	TokenURL       string        `mapstructure:"tokenUrl"`
	OrderURL       string        `mapstructure:"orderUrl"`
	NotifyURL      string        `mapstructure:"notifyUrl"`
	TradeType      string        `mapstructure:"tradeType"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Root struct {
	Server   ServerCfg  `mapstructure:"server"`
	Mysql    MysqlCfg   `mapstructure:"mysql"`
	RabbitMQ RabbitCfg  `mapstructure:"rabbitmq"`
	Redis    RedisCfg   `mapstructure:"redis"`
	Gateway  GatewayCfg `mapstructure:"gateway"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Gateway.TradeType == "" {
		C.Gateway.TradeType = "JSAPI"
	}
	if C.Gateway.Timeout <= 0 {
		C.Gateway.Timeout = 10 * time.Second
	}

	// 密钥只允许来自配置文件，启动期即拦截缺失
	if C.Gateway.PayKey == "" || C.Gateway.NotifyKey == "" {
		log.Fatalf("gateway payKey/notifyKey must be configured")
	}
}
