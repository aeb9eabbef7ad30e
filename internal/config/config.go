package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	Redis                Redis                `mapstructure:",squash"`
	Facebook             Facebook             `mapstructure:",squash"`
	GoogleAds            GoogleAds            `mapstructure:",squash"`
	OpenAI               OpenAI               `mapstructure:",squash"`
	Stripe               Stripe               `mapstructure:",squash"`
	Campaign             Campaign             `mapstructure:",squash"`
	Affiliate            Affiliate            `mapstructure:",squash"`
	Notification         Notification         `mapstructure:",squash"`
	Cors                 Cors                 `mapstructure:",squash"`
	CampaignAnalysisSync CampaignAnalysisSync `mapstructure:",squash"`
	PublishRetrySync     PublishRetrySync     `mapstructure:",squash"`
	SecretKey            string               `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	URL         string        `mapstructure:"redis_url"`
	AnalysisTTL time.Duration `mapstructure:"redis_analysis_ttl"`
}

type Facebook struct {
	BaseURL        string    `mapstructure:"facebook_base_url"`
	URL            string    `mapstructure:"-"`
	Version        string    `mapstructure:"facebook_version"`
	AccessToken    string    `mapstructure:"facebook_access_token"`
	AppID          string    `mapstructure:"facebook_app_id"`
	AppSecret      string    `mapstructure:"facebook_app_secret"`
	AdAccountID    string    `mapstructure:"facebook_ad_account_id"`
	LongLivedToken string    `mapstructure:"facebook_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`
}

type GoogleAds struct {
	BaseURL        string `mapstructure:"google_ads_base_url"`
	Version        string `mapstructure:"google_ads_version"`
	TokenURL       string `mapstructure:"google_ads_token_url"`
	CustomerID     string `mapstructure:"google_ads_customer_id"`
	DeveloperToken string `mapstructure:"google_ads_developer_token"`
	ClientID       string `mapstructure:"google_ads_client_id"`
	ClientSecret   string `mapstructure:"google_ads_client_secret"`
	RefreshToken   string `mapstructure:"google_ads_refresh_token"`
}

type OpenAI struct {
	APIKey      string        `mapstructure:"openai_api_key"`
	BaseURL     string        `mapstructure:"openai_base_url"`
	Model       string        `mapstructure:"openai_model"`
	Temperature float32       `mapstructure:"openai_temperature"`
	MaxTokens   int           `mapstructure:"openai_max_tokens"`
	JSONMode    bool          `mapstructure:"openai_json_mode"`
	Timeout     time.Duration `mapstructure:"openai_timeout"`
}

type Stripe struct {
	SecretKey string `mapstructure:"stripe_secret_key"`
}

type Campaign struct {
	MinBudget            float64       `mapstructure:"campaign_min_budget"`
	PublishTimeout       time.Duration `mapstructure:"campaign_publish_timeout"`
	PublishRatePerMinute int           `mapstructure:"campaign_publish_rate_per_minute"`
	PublishBurst         int           `mapstructure:"campaign_publish_burst"`
}

type Affiliate struct {
	DefaultCommissionRate   float64 `mapstructure:"affiliate_default_commission_rate"`
	ReferralCodeLength      int     `mapstructure:"affiliate_referral_code_length"`
	ReferralCodeMaxAttempts int     `mapstructure:"affiliate_referral_code_max_attempts"`
	MinPayoutAmount         float64 `mapstructure:"affiliate_min_payout_amount"`
}

type Notification struct {
	BufferSize int `mapstructure:"notification_buffer_size"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type CampaignAnalysisSync struct {
	CronSchedule        string `mapstructure:"campaign_analysis_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"campaign_analysis_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"campaign_analysis_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"campaign_analysis_sync_enabled"`
}

type PublishRetrySync struct {
	CronSchedule      string `mapstructure:"publish_retry_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"publish_retry_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"publish_retry_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/affiliates?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_ANALYSIS_TTL", "24h")

	viper.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("FACEBOOK_VERSION", "v22.0")
	viper.SetDefault("FACEBOOK_APP_ID", "your_app_id")
	viper.SetDefault("FACEBOOK_APP_SECRET", "your_app_secret")
	viper.SetDefault("FACEBOOK_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("FACEBOOK_AD_ACCOUNT_ID", "")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4")
	viper.SetDefault("OPENAI_TEMPERATURE", 0.7)
	viper.SetDefault("OPENAI_MAX_TOKENS", 2000)
	viper.SetDefault("OPENAI_JSON_MODE", false)
	viper.SetDefault("OPENAI_TIMEOUT", "60s")

	viper.SetDefault("STRIPE_SECRET_KEY", "")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Regras de campanha
	viper.SetDefault("CAMPAIGN_MIN_BUDGET", 10.0)
	viper.SetDefault("CAMPAIGN_PUBLISH_TIMEOUT", "30s")
	viper.SetDefault("CAMPAIGN_PUBLISH_RATE_PER_MINUTE", 60)
	viper.SetDefault("CAMPAIGN_PUBLISH_BURST", 5)

	// Regras de afiliado
	viper.SetDefault("AFFILIATE_DEFAULT_COMMISSION_RATE", 0.1)
	viper.SetDefault("AFFILIATE_REFERRAL_CODE_LENGTH", 8)
	viper.SetDefault("AFFILIATE_REFERRAL_CODE_MAX_ATTEMPTS", 10)
	viper.SetDefault("AFFILIATE_MIN_PAYOUT_AMOUNT", 50.0)

	viper.SetDefault("NOTIFICATION_BUFFER_SIZE", 16)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("CAMPAIGN_ANALYSIS_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("CAMPAIGN_ANALYSIS_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("CAMPAIGN_ANALYSIS_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("CAMPAIGN_ANALYSIS_SYNC_ENABLED", false)

	viper.SetDefault("PUBLISH_RETRY_SYNC_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("PUBLISH_RETRY_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("PUBLISH_RETRY_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize calcula os campos derivados e valida as regras de negócio configuráveis
func (c *Config) finalize() error {
	c.Facebook.URL = fmt.Sprintf("%s/%s", c.Facebook.BaseURL, c.Facebook.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	if c.Campaign.MinBudget < 0 {
		return fmt.Errorf("CAMPAIGN_MIN_BUDGET inválido: %v", c.Campaign.MinBudget)
	}

	if c.Affiliate.ReferralCodeLength <= 0 || c.Affiliate.ReferralCodeLength > 50 {
		return fmt.Errorf("AFFILIATE_REFERRAL_CODE_LENGTH deve estar entre 1 e 50: %d", c.Affiliate.ReferralCodeLength)
	}

	if c.Affiliate.ReferralCodeMaxAttempts <= 0 {
		return fmt.Errorf("AFFILIATE_REFERRAL_CODE_MAX_ATTEMPTS deve ser positivo: %d", c.Affiliate.ReferralCodeMaxAttempts)
	}

	if c.Affiliate.DefaultCommissionRate <= 0 || c.Affiliate.DefaultCommissionRate > 1 {
		return fmt.Errorf("AFFILIATE_DEFAULT_COMMISSION_RATE deve estar em (0, 1]: %v", c.Affiliate.DefaultCommissionRate)
	}

	if c.Campaign.PublishTimeout <= 0 {
		c.Campaign.PublishTimeout = 30 * time.Second
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
