package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Portal    PortalConfig    `mapstructure:"portal"`
	Service   ServiceAccount  `mapstructure:"service"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Semester  SemesterConfig  `mapstructure:"semester"`
	Security  SecurityConfig  `mapstructure:"security"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	// GuildID registers commands on one server only (development)
	GuildID string `mapstructure:"guild_id"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PortalConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timezone       string `mapstructure:"timezone"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// ServiceAccount is the privileged portal identity used by the reconcilers.
// UserID doubles as the chat id of the bot administrator.
type ServiceAccount struct {
	UserID   string `mapstructure:"user_id"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type SchedulerConfig struct {
	NotificationInterval    int `mapstructure:"notification_interval"`     // milliseconds
	AutoCheckinInterval     int `mapstructure:"autocheckin_interval"`      // milliseconds
	SemesterRebuildInterval int `mapstructure:"semester_rebuild_interval"` // milliseconds
	LookaheadDays           int `mapstructure:"lookahead_days"`
}

// SemesterConfig pins the semester bounds (YYYY-MM-DD). When empty the
// bounds are read from the portal profile page.
type SemesterConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type SecurityConfig struct {
	// CredentialsKey enables sealing of persisted portal tokens
	CredentialsKey string `mapstructure:"credentials_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}
